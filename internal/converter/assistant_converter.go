package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AssistantToResponse converts an Assistant entity to AssistantResponse DTO
func AssistantToResponse(assistant *entity.Assistant) *dto.AssistantResponse {
	if assistant == nil {
		return nil
	}

	response := &dto.AssistantResponse{
		ID:        assistant.ID,
		Name:      assistant.Name,
		Phone:     assistant.Phone,
		DoctorID:  assistant.DoctorID,
		IsActive:  assistant.IsActive,
		CreatedAt: assistant.CreatedAt,
	}

	if assistant.User.ID != uuid.Nil {
		response.Email = assistant.User.Email
	}

	return response
}

// AssistantsToResponses converts a slice of Assistant entities to DTOs
func AssistantsToResponses(assistants []entity.Assistant) []dto.AssistantResponse {
	responses := make([]dto.AssistantResponse, len(assistants))
	for i, assistant := range assistants {
		resp := AssistantToResponse(&assistant)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
