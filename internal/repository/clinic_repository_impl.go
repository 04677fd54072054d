package repository

import (
	"errors"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"gorm.io/gorm"
)

type clinicRepository struct{}

func NewClinicRepository() domainRepo.ClinicRepository {
	return &clinicRepository{}
}

func (r *clinicRepository) Create(db *gorm.DB, clinic *entity.Clinic) error {
	return db.Create(clinic).Error
}

func (r *clinicRepository) FindByID(db *gorm.DB, id int) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := db.Where("id = ?", id).First(&clinic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) FindAll(db *gorm.DB) ([]entity.Clinic, error) {
	var clinics []entity.Clinic
	err := db.Order("name ASC").Find(&clinics).Error
	if err != nil {
		return nil, err
	}
	return clinics, nil
}

func (r *clinicRepository) FindAllActive(db *gorm.DB) ([]entity.Clinic, error) {
	var clinics []entity.Clinic
	err := db.Where("is_active = ?", true).Order("name ASC").Find(&clinics).Error
	if err != nil {
		return nil, err
	}
	return clinics, nil
}

func (r *clinicRepository) Update(db *gorm.DB, clinic *entity.Clinic) error {
	return db.Save(clinic).Error
}

func (r *clinicRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Clinic{})
	return result.RowsAffected, result.Error
}
