package repository

import (
	"errors"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"gorm.io/gorm"
)

type roleRepository struct{}

func NewRoleRepository() domainRepo.RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) FindByID(db *gorm.DB, id int) (*entity.Role, error) {
	var role entity.Role
	err := db.Where("id = ?", id).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByName(db *gorm.DB, name string) (*entity.Role, error) {
	var role entity.Role
	err := db.Where("role_name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindAll(db *gorm.DB) ([]entity.Role, error) {
	var roles []entity.Role
	err := db.Order("id ASC").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}
