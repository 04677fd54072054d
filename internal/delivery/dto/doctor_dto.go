package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	Email           string          `json:"email" validate:"required,email"`
	Password        string          `json:"password" validate:"required,min=6"`
	Name            string          `json:"name" validate:"required,min=2"`
	Specialization  string          `json:"specialization" validate:"required"`
	Experience      int             `json:"experience" validate:"omitempty,gte=0"`
	LicenseNumber   string          `json:"license_number" validate:"required"`
	Qualification   string          `json:"qualification" validate:"required"`
	Bio             string          `json:"bio" validate:"omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee" validate:"required"`
}

type UpdateDoctorRequest struct {
	Name            string           `json:"name" validate:"omitempty,min=2"`
	Specialization  string           `json:"specialization" validate:"omitempty"`
	Experience      *int             `json:"experience" validate:"omitempty,gte=0"`
	Qualification   string           `json:"qualification" validate:"omitempty"`
	Bio             string           `json:"bio" validate:"omitempty"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee" validate:"omitempty"`
	IsActive        *bool            `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email,omitempty"`
	Specialization  string          `json:"specialization"`
	Experience      int             `json:"experience"`
	LicenseNumber   string          `json:"license_number,omitempty"`
	Qualification   string          `json:"qualification"`
	Bio             string          `json:"bio,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	IsActive        *bool           `json:"is_active,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

// Dashboard DTOs

type DashboardStatsResponse struct {
	TotalAppointments     int64 `json:"total_appointments"`
	TodayAppointments     int64 `json:"today_appointments"`
	TotalPatients         int64 `json:"total_patients"`
	TodayPatients         int64 `json:"today_patients"`
	PendingAppointments   int64 `json:"pending_appointments"`
	CompletedAppointments int64 `json:"completed_appointments"`
	AssistantsCount       int64 `json:"assistants_count"`
}
