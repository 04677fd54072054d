package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"
)

type AssistantHandler struct {
	assistantUsecase usecase.AssistantUsecase
	validator        *validator.CustomValidator
}

func NewAssistantHandler(assistantUsecase usecase.AssistantUsecase, validator *validator.CustomValidator) *AssistantHandler {
	return &AssistantHandler{
		assistantUsecase: assistantUsecase,
		validator:        validator,
	}
}

func (h *AssistantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	assistant, err := h.assistantUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to create assistant")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Assistant created successfully", assistant)
}

func (h *AssistantHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid assistant ID", nil)
		return
	}

	assistant, err := h.assistantUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAssistantNotFound:
			response.NotFound(w, "Assistant not found")
		default:
			response.InternalServerError(w, "Failed to get assistant")
		}
		return
	}

	response.Success(w, http.StatusOK, "Assistant retrieved successfully", assistant)
}

func (h *AssistantHandler) GetByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathID(r, "doctorId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	assistants, err := h.assistantUsecase.GetByDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get assistants")
		return
	}

	response.Success(w, http.StatusOK, "Assistants retrieved successfully", assistants)
}

func (h *AssistantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid assistant ID", nil)
		return
	}

	var req dto.UpdateAssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	assistant, err := h.assistantUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAssistantNotFound:
			response.NotFound(w, "Assistant not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to update assistant")
		}
		return
	}

	response.Success(w, http.StatusOK, "Assistant updated successfully", assistant)
}

func (h *AssistantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid assistant ID", nil)
		return
	}

	if err := h.assistantUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrAssistantNotFound:
			response.NotFound(w, "Assistant not found")
		default:
			response.InternalServerError(w, "Failed to delete assistant")
		}
		return
	}

	response.Success(w, http.StatusOK, "Assistant deleted successfully", nil)
}
