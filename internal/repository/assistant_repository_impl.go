package repository

import (
	"errors"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type assistantRepository struct{}

func NewAssistantRepository() domainRepo.AssistantRepository {
	return &assistantRepository{}
}

func (r *assistantRepository) Create(db *gorm.DB, assistant *entity.Assistant) error {
	return db.Create(assistant).Error
}

func (r *assistantRepository) FindByID(db *gorm.DB, id int) (*entity.Assistant, error) {
	var assistant entity.Assistant
	err := db.Preload("User").Preload("Doctor").Where("id = ?", id).First(&assistant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assistant, nil
}

func (r *assistantRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Assistant, error) {
	var assistant entity.Assistant
	err := db.Preload("Doctor").Where("user_id = ?", userID).First(&assistant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assistant, nil
}

func (r *assistantRepository) FindByDoctorID(db *gorm.DB, doctorID int) ([]entity.Assistant, error) {
	var assistants []entity.Assistant
	err := db.Preload("User").Where("doctor_id = ?", doctorID).Order("name ASC").Find(&assistants).Error
	if err != nil {
		return nil, err
	}
	return assistants, nil
}

func (r *assistantRepository) CountActiveByDoctorID(db *gorm.DB, doctorID int) (int64, error) {
	var count int64
	err := db.Model(&entity.Assistant{}).
		Where("doctor_id = ? AND is_active = ?", doctorID, true).
		Count(&count).Error
	return count, err
}

func (r *assistantRepository) Update(db *gorm.DB, assistant *entity.Assistant) error {
	return db.Omit("User", "Doctor").Save(assistant).Error
}

func (r *assistantRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Assistant{})
	return result.RowsAffected, result.Error
}
