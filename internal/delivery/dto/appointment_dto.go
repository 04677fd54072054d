package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID    int    `json:"doctor_id" validate:"required,min=1"`
	ClinicID    int    `json:"clinic_id" validate:"required,min=1"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	Duration    int    `json:"duration" validate:"required,min=5"`
	MaxPatients int    `json:"max_patients" validate:"omitempty,min=1"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Available Booked Completed Cancelled"`
}

// CreateScheduleRequest batch-creates one slot per duration-sized
// sub-interval of [start_time, end_time).
type CreateScheduleRequest struct {
	ClinicID        int    `json:"clinic_id" validate:"required,min=1"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string `json:"end_time" validate:"required,datetime=15:04"`
	SlotDuration    int    `json:"slot_duration" validate:"required,min=5"`
	PatientsPerSlot int    `json:"patients_per_slot" validate:"required,min=1"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              int             `json:"id"`
	DoctorID        int             `json:"doctor_id"`
	ClinicID        int             `json:"clinic_id"`
	Date            string          `json:"date"`
	StartTime       string          `json:"start_time"`
	EndTime         string          `json:"end_time"`
	Duration        int             `json:"duration"`
	MaxPatients     int             `json:"max_patients"`
	CurrentBookings int             `json:"current_bookings"`
	Status          string          `json:"status"`
	Doctor          *DoctorResponse `json:"doctor,omitempty"`
	Clinic          *ClinicResponse `json:"clinic,omitempty"`
	BookedTimes     []string        `json:"booked_times,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// ScheduleResponse reports the outcome of a batch schedule generation.
// Skipped lists the start times that already had a slot and were left alone.
type ScheduleResponse struct {
	Created []AppointmentResponse `json:"created"`
	Skipped []string              `json:"skipped,omitempty"`
	Total   int                   `json:"total"`
}
