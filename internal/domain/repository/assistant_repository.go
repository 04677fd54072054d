package repository

import (
	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssistantRepository interface {
	Create(db *gorm.DB, assistant *entity.Assistant) error
	FindByID(db *gorm.DB, id int) (*entity.Assistant, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Assistant, error)
	FindByDoctorID(db *gorm.DB, doctorID int) ([]entity.Assistant, error)
	CountActiveByDoctorID(db *gorm.DB, doctorID int) (int64, error)
	Update(db *gorm.DB, assistant *entity.Assistant) error
	Delete(db *gorm.DB, id int) (int64, error)
}
