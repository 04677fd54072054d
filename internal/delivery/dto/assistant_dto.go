package dto

import "time"

// Request DTOs

type CreateAssistantRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"omitempty"`
	DoctorID int    `json:"doctor_id" validate:"required,min=1"`
}

type UpdateAssistantRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2"`
	Phone    string `json:"phone" validate:"omitempty"`
	DoctorID *int   `json:"doctor_id" validate:"omitempty,min=1"`
	IsActive *bool  `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type AssistantResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	DoctorID  int       `json:"doctor_id"`
	IsActive  *bool     `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type AssistantListResponse struct {
	Assistants []AssistantResponse `json:"assistants"`
	Total      int                 `json:"total"`
}
