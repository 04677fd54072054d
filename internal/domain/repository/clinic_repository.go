package repository

import (
	"clinic-booking-api/internal/domain/entity"

	"gorm.io/gorm"
)

type ClinicRepository interface {
	Create(db *gorm.DB, clinic *entity.Clinic) error
	FindByID(db *gorm.DB, id int) (*entity.Clinic, error)
	FindAll(db *gorm.DB) ([]entity.Clinic, error)
	FindAllActive(db *gorm.DB) ([]entity.Clinic, error)
	Update(db *gorm.DB, clinic *entity.Clinic) error
	Delete(db *gorm.DB, id int) (int64, error)
}
