package repository

import (
	"time"

	"clinic-booking-api/internal/domain/entity"

	"gorm.io/gorm"
)

// TokenAppointmentFilter narrows booking queries at the repository layer.
// Zero values mean "no filter".
type TokenAppointmentFilter struct {
	DoctorID int
	ClinicID int
	Date     string // YYYY-MM-DD
}

type TokenAppointmentRepository interface {
	Create(db *gorm.DB, booking *entity.TokenAppointment) error
	FindByID(db *gorm.DB, id int) (*entity.TokenAppointment, error)
	// FindByIDForUpdate loads the booking under a row-level lock. Must be
	// called inside a transaction; the lock is held until that transaction
	// ends.
	FindByIDForUpdate(db *gorm.DB, id int) (*entity.TokenAppointment, error)
	FindAll(db *gorm.DB) ([]entity.TokenAppointment, error)
	FindByPatientEmail(db *gorm.DB, email string) ([]entity.TokenAppointment, error)
	FindByDoctorID(db *gorm.DB, doctorID int) ([]entity.TokenAppointment, error)
	FindWithFilters(db *gorm.DB, filter *TokenAppointmentFilter) ([]entity.TokenAppointment, error)
	FindByTokenNumber(db *gorm.DB, tokenNumber string) (*entity.TokenAppointment, error)
	FindConfirmedByDoctorEmailDate(db *gorm.DB, doctorID int, email string, date time.Time) (*entity.TokenAppointment, error)
	FindUpcomingByDoctor(db *gorm.DB, doctorID int, from time.Time, days, limit int) ([]entity.TokenAppointment, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) ([]entity.TokenAppointment, error)
	FindBookedTimes(db *gorm.DB, appointmentIDs []int) (map[int][]string, error)
	CountByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) (int64, error)
	CountByDoctorID(db *gorm.DB, doctorID int) (int64, error)
	CountByDoctorAndStatus(db *gorm.DB, doctorID int, status entity.TokenAppointmentStatus) (int64, error)
	Update(db *gorm.DB, booking *entity.TokenAppointment) error
	Delete(db *gorm.DB, id int) error
}
