package repository

import (
	"errors"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id int) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("User").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("User").Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Preload("User").Order("name ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// FindAllActive returns doctors whose user account is active, for the public
// clinic directory.
func (r *doctorRepository) FindAllActive(db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.
		Joins("JOIN users ON users.id = doctors.user_id").
		Where("users.is_active = ?", true).
		Preload("User").
		Order("doctors.name ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("User").Save(doctor).Error
}

func (r *doctorRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected, result.Error
}
