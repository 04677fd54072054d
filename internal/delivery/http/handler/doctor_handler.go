package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"

	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		case usecase.ErrLicenseAlreadyExists:
			response.Conflict(w, "License number already exists")
		default:
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

// GetPublicDirectory is the unauthenticated doctor listing patients browse
func (h *DoctorHandler) GetPublicDirectory(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetPublicDirectory(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to update doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	if err := h.doctorUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorHasAppointments:
			response.Conflict(w, "Doctor still has appointment slots")
		default:
			response.InternalServerError(w, "Failed to delete doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

// pathID parses an integer path variable
func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}
