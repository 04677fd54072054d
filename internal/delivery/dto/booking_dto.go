package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

// PatientBookingRequest is the self-service booking body. The email must
// match the logged-in patient's account email.
type PatientBookingRequest struct {
	AppointmentID   int    `json:"appointment_id" validate:"required,min=1"`
	PatientName     string `json:"patient_name" validate:"required,min=2"`
	PatientEmail    string `json:"patient_email" validate:"required,email"`
	PatientPhone    string `json:"patient_phone" validate:"required"`
	PatientAge      int    `json:"patient_age" validate:"required,gte=0,lte=150"`
	PatientGender   string `json:"patient_gender" validate:"required,oneof=Male Female Other"`
	PatientLocation string `json:"patient_location" validate:"omitempty"`
	Time            string `json:"time" validate:"omitempty,datetime=15:04"`
	ReasonForVisit  string `json:"reason_for_visit" validate:"omitempty"`
	Notes           string `json:"notes" validate:"omitempty"`
}

// StaffBookingRequest is the assistant/doctor booking body. Email may be
// empty for walk-in patients; fee overrides the doctor's consultation fee
// when present.
type StaffBookingRequest struct {
	DoctorID        int              `json:"doctor_id" validate:"required,min=1"`
	AppointmentID   int              `json:"appointment_id" validate:"required,min=1"`
	PatientName     string           `json:"patient_name" validate:"required,min=2"`
	PatientEmail    string           `json:"patient_email" validate:"omitempty,email"`
	PatientPhone    string           `json:"patient_phone" validate:"required"`
	PatientAge      int              `json:"patient_age" validate:"required,gte=0,lte=150"`
	PatientGender   string           `json:"patient_gender" validate:"required,oneof=Male Female Other"`
	PatientLocation string           `json:"patient_location" validate:"omitempty"`
	Time            string           `json:"time" validate:"omitempty,datetime=15:04"`
	Fee             *decimal.Decimal `json:"fee" validate:"omitempty"`
	ReasonForVisit  string           `json:"reason_for_visit" validate:"omitempty"`
	Notes           string           `json:"notes" validate:"omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Confirmed Pending Completed Cancelled 'No Show'"`
}

// Response DTOs

type BookingResponse struct {
	ID              int                  `json:"id"`
	TokenNumber     string               `json:"token_number"`
	PatientName     string               `json:"patient_name"`
	PatientEmail    string               `json:"patient_email,omitempty"`
	PatientPhone    string               `json:"patient_phone"`
	PatientAge      int                  `json:"patient_age"`
	PatientGender   string               `json:"patient_gender"`
	PatientLocation string               `json:"patient_location,omitempty"`
	Date            string               `json:"date"`
	Time            string               `json:"time"`
	Status          string               `json:"status"`
	BookedVia       string               `json:"booked_via"`
	FeeCharged      decimal.Decimal      `json:"fee_charged"`
	ReasonForVisit  string               `json:"reason_for_visit,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	DoctorID        int                  `json:"doctor_id"`
	AppointmentID   int                  `json:"appointment_id"`
	Doctor          *DoctorResponse      `json:"doctor,omitempty"`
	Appointment     *AppointmentResponse `json:"appointment,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
