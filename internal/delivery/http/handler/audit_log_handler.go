package handler

import (
	"net/http"
	"strconv"

	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

func (h *AuditLogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditLogUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}

func (h *AuditLogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAuditLogNotFound:
			response.NotFound(w, "Audit log not found")
		default:
			response.InternalServerError(w, "Failed to get audit log")
		}
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}
