package repository

import (
	"errors"
	"time"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tokenAppointmentRepository struct{}

func NewTokenAppointmentRepository() domainRepo.TokenAppointmentRepository {
	return &tokenAppointmentRepository{}
}

func (r *tokenAppointmentRepository) Create(db *gorm.DB, booking *entity.TokenAppointment) error {
	return db.Create(booking).Error
}

func (r *tokenAppointmentRepository) FindByID(db *gorm.DB, id int) (*entity.TokenAppointment, error) {
	var booking entity.TokenAppointment
	err := db.Preload("Doctor").Preload("Appointment").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate locks the booking row (SELECT ... FOR UPDATE) so
// concurrent cancels and status changes of the same booking serialize
// before touching the slot counter. No preloads here: relation rows must
// stay outside the lock.
func (r *tokenAppointmentRepository) FindByIDForUpdate(db *gorm.DB, id int) (*entity.TokenAppointment, error) {
	var booking entity.TokenAppointment
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *tokenAppointmentRepository) FindAll(db *gorm.DB) ([]entity.TokenAppointment, error) {
	var bookings []entity.TokenAppointment
	err := db.Preload("Doctor").Preload("Appointment").
		Order("date ASC, time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *tokenAppointmentRepository) FindByPatientEmail(db *gorm.DB, email string) ([]entity.TokenAppointment, error) {
	var bookings []entity.TokenAppointment
	err := db.Preload("Doctor").Preload("Appointment").
		Where("patient_email = ?", email).
		Order("date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *tokenAppointmentRepository) FindByDoctorID(db *gorm.DB, doctorID int) ([]entity.TokenAppointment, error) {
	var bookings []entity.TokenAppointment
	err := db.Preload("Appointment").
		Where("doctor_id = ?", doctorID).
		Order("date ASC, time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *tokenAppointmentRepository) FindWithFilters(db *gorm.DB, filter *domainRepo.TokenAppointmentFilter) ([]entity.TokenAppointment, error) {
	query := db.Preload("Doctor").Preload("Appointment").Preload("Appointment.Clinic")

	if filter != nil {
		if filter.DoctorID != 0 {
			query = query.Where("token_appointments.doctor_id = ?", filter.DoctorID)
		}
		if filter.ClinicID != 0 {
			query = query.
				Joins("JOIN appointments ON appointments.id = token_appointments.appointment_id").
				Where("appointments.clinic_id = ?", filter.ClinicID)
		}
		if filter.Date != "" {
			query = query.Where("token_appointments.date = ?", filter.Date)
		}
	}

	var bookings []entity.TokenAppointment
	err := query.Order("token_appointments.date ASC, token_appointments.time ASC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *tokenAppointmentRepository) FindByTokenNumber(db *gorm.DB, tokenNumber string) (*entity.TokenAppointment, error) {
	var booking entity.TokenAppointment
	err := db.Preload("Doctor").Preload("Appointment").
		Where("token_number = ?", tokenNumber).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// FindConfirmedByDoctorEmailDate backs the duplicate-booking guard: at most
// one Confirmed booking per (doctor, patient email, date).
func (r *tokenAppointmentRepository) FindConfirmedByDoctorEmailDate(db *gorm.DB, doctorID int, email string, date time.Time) (*entity.TokenAppointment, error) {
	var booking entity.TokenAppointment
	err := db.Where("doctor_id = ? AND patient_email = ? AND date = ? AND status = ?",
		doctorID, email, date.Format("2006-01-02"), entity.TokenAppointmentStatusConfirmed).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *tokenAppointmentRepository) FindUpcomingByDoctor(db *gorm.DB, doctorID int, from time.Time, days, limit int) ([]entity.TokenAppointment, error) {
	until := from.AddDate(0, 0, days)
	var bookings []entity.TokenAppointment
	err := db.Where("doctor_id = ? AND date >= ? AND date <= ? AND status = ?",
		doctorID, from.Format("2006-01-02"), until.Format("2006-01-02"),
		entity.TokenAppointmentStatusConfirmed).
		Order("date ASC, time ASC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *tokenAppointmentRepository) FindByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) ([]entity.TokenAppointment, error) {
	var bookings []entity.TokenAppointment
	err := db.Where("doctor_id = ? AND date = ?", doctorID, date.Format("2006-01-02")).
		Order("time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindBookedTimes returns the confirmed booking times per slot, grouped by
// appointment id, for the public availability view.
func (r *tokenAppointmentRepository) FindBookedTimes(db *gorm.DB, appointmentIDs []int) (map[int][]string, error) {
	result := make(map[int][]string)
	if len(appointmentIDs) == 0 {
		return result, nil
	}

	type bookedTime struct {
		AppointmentID int
		Time          string
	}
	var rows []bookedTime

	err := db.Model(&entity.TokenAppointment{}).
		Select("appointment_id, time").
		Where("appointment_id IN ? AND status = ?", appointmentIDs, entity.TokenAppointmentStatusConfirmed).
		Order("time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.AppointmentID] = append(result[row.AppointmentID], row.Time)
	}
	return result, nil
}

// CountByDoctorAndDate counts every booking for a doctor on a date,
// cancelled ones included. The token sequence never reuses numbers.
func (r *tokenAppointmentRepository) CountByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.TokenAppointment{}).
		Where("doctor_id = ? AND date = ?", doctorID, date.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}

func (r *tokenAppointmentRepository) CountByDoctorID(db *gorm.DB, doctorID int) (int64, error) {
	var count int64
	err := db.Model(&entity.TokenAppointment{}).Where("doctor_id = ?", doctorID).Count(&count).Error
	return count, err
}

func (r *tokenAppointmentRepository) CountByDoctorAndStatus(db *gorm.DB, doctorID int, status entity.TokenAppointmentStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.TokenAppointment{}).
		Where("doctor_id = ? AND status = ?", doctorID, status).
		Count(&count).Error
	return count, err
}

func (r *tokenAppointmentRepository) Update(db *gorm.DB, booking *entity.TokenAppointment) error {
	return db.Omit("Doctor", "Appointment").Save(booking).Error
}

func (r *tokenAppointmentRepository) Delete(db *gorm.DB, id int) error {
	return db.Where("id = ?", id).Delete(&entity.TokenAppointment{}).Error
}
