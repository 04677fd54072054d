package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DoctorDashboardUsecase
	validator        *validator.CustomValidator
}

func NewDashboardHandler(dashboardUsecase usecase.DoctorDashboardUsecase, validator *validator.CustomValidator) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
		validator:        validator,
	}
}

// CreateSchedule batch-generates slots for the logged-in doctor's day
func (h *DashboardHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.dashboardUsecase.CreateSchedule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrClinicNotFound):
			response.NotFound(w, "Clinic not found")
		case errors.Is(err, usecase.ErrDoctorProfileGone):
			response.NotFound(w, "Doctor profile not found")
		default:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		}
		return
	}

	response.Success(w, http.StatusCreated, "Schedule generated successfully", schedule)
}

func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardUsecase.GetStats(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrDoctorProfileGone:
			response.NotFound(w, "Doctor profile not found")
		default:
			response.InternalServerError(w, "Failed to get dashboard stats")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

func (h *DashboardHandler) GetTodayBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.dashboardUsecase.GetTodayBookings(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrDoctorProfileGone:
			response.NotFound(w, "Doctor profile not found")
		default:
			response.InternalServerError(w, "Failed to get today's bookings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Today's bookings retrieved successfully", bookings)
}

func (h *DashboardHandler) GetUpcomingBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.dashboardUsecase.GetUpcomingBookings(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrDoctorProfileGone:
			response.NotFound(w, "Doctor profile not found")
		default:
			response.InternalServerError(w, "Failed to get upcoming bookings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Upcoming bookings retrieved successfully", bookings)
}
