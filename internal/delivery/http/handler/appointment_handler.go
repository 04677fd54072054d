package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		var overlapErr *usecase.SlotOverlapError
		switch {
		case errors.As(err, &overlapErr):
			response.Conflict(w, overlapErr.Error())
		case errors.Is(err, usecase.ErrInvalidTimeRange):
			response.Error(w, http.StatusBadRequest, "Start time must be before end time", nil)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrClinicNotFound):
			response.NotFound(w, "Clinic not found")
		case errors.Is(err, usecase.ErrNotSlotOwner):
			response.Forbidden(w, "You can only create slots for yourself")
		default:
			response.InternalServerError(w, "Failed to create appointment slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment slot created successfully", appointment)
}

func (h *AppointmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointment slots")
		return
	}

	response.Success(w, http.StatusOK, "Appointment slots retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Appointment slot not found")
		default:
			response.InternalServerError(w, "Failed to get appointment slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment slot retrieved successfully", appointment)
}

func (h *AppointmentHandler) GetByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathID(r, "doctorId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	appointments, err := h.appointmentUsecase.GetByDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointment slots")
		return
	}

	response.Success(w, http.StatusOK, "Appointment slots retrieved successfully", appointments)
}

// GetAvailableByDoctor is the public listing patients use to pick a slot
func (h *AppointmentHandler) GetAvailableByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathID(r, "doctorId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	appointments, err := h.appointmentUsecase.GetAvailableByDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get available slots")
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", appointments)
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), id, entity.AppointmentStatus(req.Status))
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Appointment slot not found")
		case usecase.ErrNotSlotOwner:
			response.Forbidden(w, "You can only manage your own slots")
		default:
			response.InternalServerError(w, "Failed to update appointment slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment slot updated successfully", appointment)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Appointment slot not found")
		case usecase.ErrNotSlotOwner:
			response.Forbidden(w, "You can only manage your own slots")
		case usecase.ErrSlotHasBookings:
			response.Conflict(w, "Appointment slot has active bookings")
		default:
			response.InternalServerError(w, "Failed to delete appointment slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment slot deleted successfully", nil)
}
