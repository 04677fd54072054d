package repository

import (
	"clinic-booking-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, auditLog *entity.AuditLog) error
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
	FindAll(db *gorm.DB) ([]entity.AuditLog, error)
}
