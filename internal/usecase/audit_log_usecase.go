package usecase

import (
	"context"
	"errors"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAuditLogNotFound = errors.New("audit log not found")

type AuditLogUsecase interface {
	GetAll(ctx context.Context) (*dto.AuditLogListResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (u *auditLogUsecase) GetAll(ctx context.Context) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) GetByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}
	return converter.AuditLogToResponse(auditLog), nil
}
