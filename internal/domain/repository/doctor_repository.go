package repository

import (
	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id int) (*entity.Doctor, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error)
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	FindAllActive(db *gorm.DB) ([]entity.Doctor, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	Delete(db *gorm.DB, id int) (int64, error)
}
