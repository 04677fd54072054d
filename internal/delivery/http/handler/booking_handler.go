package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// PatientBook handles POST /bookings from the patient channel
func (h *BookingHandler) PatientBook(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.PatientBook(r.Context(), &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

// AssistantBook handles bookings made by an assistant at the front desk
func (h *BookingHandler) AssistantBook(w http.ResponseWriter, r *http.Request) {
	h.staffBook(w, r, entity.ChannelAssistant)
}

// DoctorBook handles bookings made by the doctor directly
func (h *BookingHandler) DoctorBook(w http.ResponseWriter, r *http.Request) {
	h.staffBook(w, r, entity.ChannelDoctor)
}

func (h *BookingHandler) staffBook(w http.ResponseWriter, r *http.Request, channel entity.BookingChannel) {
	var req dto.StaffBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.StaffBook(r.Context(), channel, &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	if err := h.bookingUsecase.Cancel(r.Context(), id); err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", nil)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	var req dto.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.UpdateStatus(r.Context(), id, entity.TokenAppointmentStatus(req.Status))
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated successfully", booking)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	booking, err := h.bookingUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) GetByTokenNumber(w http.ResponseWriter, r *http.Request) {
	tokenNumber := mux.Vars(r)["token"]
	if tokenNumber == "" {
		response.Error(w, http.StatusBadRequest, "Invalid token number", nil)
		return
	}

	booking, err := h.bookingUsecase.GetByTokenNumber(r.Context(), tokenNumber)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingUsecase.GetMyBookings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// List handles the staff booking listing with optional doctor_id, clinic_id
// and date query filters
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &repository.TokenAppointmentFilter{
		Date: r.URL.Query().Get("date"),
	}
	if v := r.URL.Query().Get("doctor_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			filter.DoctorID = id
		}
	}
	if v := r.URL.Query().Get("clinic_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			filter.ClinicID = id
		}
	}

	bookings, err := h.bookingUsecase.List(r.Context(), filter)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// writeBookingError maps booking usecase sentinels to HTTP statuses
func (h *BookingHandler) writeBookingError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrBookingNotFound:
		response.NotFound(w, "Booking not found")
	case usecase.ErrSlotNotFound:
		response.NotFound(w, "Appointment slot not found")
	case usecase.ErrDoctorNotFound, usecase.ErrDoctorProfileGone:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrSlotFull:
		response.Conflict(w, "Appointment slot is fully booked")
	case usecase.ErrDuplicateBooking:
		response.Conflict(w, "Patient already has a booking with this doctor on this date")
	case usecase.ErrBookingTerminal:
		response.Conflict(w, "Booking is already completed or cancelled")
	case usecase.ErrSlotUnavailable:
		response.Conflict(w, "Appointment slot is not open for booking")
	case usecase.ErrSlotPast:
		response.Error(w, http.StatusBadRequest, "Cannot book a past appointment slot", nil)
	case usecase.ErrEmailRequired:
		response.Error(w, http.StatusBadRequest, "Patient email is required", nil)
	case usecase.ErrEmailMismatch:
		response.Error(w, http.StatusBadRequest, "Patient email must match your account email", nil)
	case usecase.ErrBookingNotOwned:
		response.Forbidden(w, "Booking does not belong to you")
	case usecase.ErrNotAssignedToDoctor:
		response.Forbidden(w, "You are not assigned to this doctor")
	case usecase.ErrSlotDoctorMismatch:
		response.Forbidden(w, "Appointment slot belongs to another doctor")
	default:
		response.InternalServerError(w, "Failed to process booking")
	}
}
