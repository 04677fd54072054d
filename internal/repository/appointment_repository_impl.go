package repository

import (
	"errors"
	"time"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor").Preload("Clinic").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindByIDForUpdate locks the slot row (SELECT ... FOR UPDATE) so concurrent
// bookings against the same slot serialize on the capacity check. No preloads
// here: relation rows must stay outside the lock.
func (r *appointmentRepository) FindByIDForUpdate(db *gorm.DB, id int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Clinic").
		Order("date ASC, start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Clinic").
		Where("doctor_id = ?", doctorID).
		Order("date ASC, start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_id = ? AND date = ?", doctorID, date.Format("2006-01-02")).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBySlotKey(db *gorm.DB, doctorID, clinicID int, date time.Time, startTime string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("doctor_id = ? AND clinic_id = ? AND date = ? AND start_time = ?",
		doctorID, clinicID, date.Format("2006-01-02"), startTime).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAvailableByDoctor(db *gorm.DB, doctorID int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Clinic").
		Where("doctor_id = ? AND status = ? AND current_bookings < max_patients",
			doctorID, entity.AppointmentStatusAvailable).
		Order("date ASC, start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) CountByDoctorID(db *gorm.DB, doctorID int) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Where("doctor_id = ?", doctorID).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND date = ?", doctorID, date.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Doctor", "Clinic").Save(appointment).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
