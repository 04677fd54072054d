package repository

import (
	"time"

	"clinic-booking-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int) (*entity.Appointment, error)
	// FindByIDForUpdate loads the slot under a row-level lock. Must be called
	// inside a transaction; the lock is held until that transaction ends.
	FindByIDForUpdate(db *gorm.DB, id int) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID int) ([]entity.Appointment, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) ([]entity.Appointment, error)
	FindBySlotKey(db *gorm.DB, doctorID, clinicID int, date time.Time, startTime string) (*entity.Appointment, error)
	FindAvailableByDoctor(db *gorm.DB, doctorID int) ([]entity.Appointment, error)
	CountByDoctorID(db *gorm.DB, doctorID int) (int64, error)
	CountByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) (int64, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id int) (int64, error)
}
