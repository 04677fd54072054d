package repository

import (
	"clinic-booking-api/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByID(db *gorm.DB, id int) (*entity.Role, error)
	FindByName(db *gorm.DB, name string) (*entity.Role, error)
	FindAll(db *gorm.DB) ([]entity.Role, error)
}
