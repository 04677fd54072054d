package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"
)

type ClinicHandler struct {
	clinicUsecase usecase.ClinicUsecase
	validator     *validator.CustomValidator
}

func NewClinicHandler(clinicUsecase usecase.ClinicUsecase, validator *validator.CustomValidator) *ClinicHandler {
	return &ClinicHandler{
		clinicUsecase: clinicUsecase,
		validator:     validator,
	}
}

func (h *ClinicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	clinic, err := h.clinicUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create clinic")
		return
	}

	response.Success(w, http.StatusCreated, "Clinic created successfully", clinic)
}

func (h *ClinicHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.clinicUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get clinics")
		return
	}

	response.Success(w, http.StatusOK, "Clinics retrieved successfully", clinics)
}

// GetAllActive is the public clinic listing
func (h *ClinicHandler) GetAllActive(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.clinicUsecase.GetAllActive(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get clinics")
		return
	}

	response.Success(w, http.StatusOK, "Clinics retrieved successfully", clinics)
}

func (h *ClinicHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinic ID", nil)
		return
	}

	clinic, err := h.clinicUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		default:
			response.InternalServerError(w, "Failed to get clinic")
		}
		return
	}

	response.Success(w, http.StatusOK, "Clinic retrieved successfully", clinic)
}

func (h *ClinicHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinic ID", nil)
		return
	}

	var req dto.UpdateClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	clinic, err := h.clinicUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		default:
			response.InternalServerError(w, "Failed to update clinic")
		}
		return
	}

	response.Success(w, http.StatusOK, "Clinic updated successfully", clinic)
}

func (h *ClinicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinic ID", nil)
		return
	}

	if err := h.clinicUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		default:
			response.InternalServerError(w, "Failed to delete clinic")
		}
		return
	}

	response.Success(w, http.StatusOK, "Clinic deleted successfully", nil)
}
