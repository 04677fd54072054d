package entity

import (
	"errors"
	"time"
)

// AppointmentStatus represents the status of an appointment slot
type AppointmentStatus string

const (
	AppointmentStatusAvailable AppointmentStatus = "Available"
	AppointmentStatusBooked    AppointmentStatus = "Booked"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

var (
	// ErrSlotAtCapacity is returned when a booking would push CurrentBookings past MaxPatients
	ErrSlotAtCapacity = errors.New("appointment slot is fully booked")
)

// Appointment represents a bookable slot: a doctor at a clinic on a date with
// a time window and a finite patient capacity.
//
// Invariants:
//   - 0 <= CurrentBookings <= MaxPatients
//   - CurrentBookings equals the count of non-cancelled token appointments
//     referencing this slot
//   - Status is Booked exactly while CurrentBookings == MaxPatients, unless
//     the slot was manually set to Completed or Cancelled
type Appointment struct {
	ID              int               `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID        int               `gorm:"not null;index" json:"doctor_id"`
	ClinicID        int               `gorm:"not null;index" json:"clinic_id"`
	Date            time.Time         `gorm:"type:date;not null;index" json:"date"`
	StartTime       string            `gorm:"type:time;not null" json:"start_time"`
	EndTime         string            `gorm:"type:time;not null" json:"end_time"`
	Duration        int               `gorm:"not null" json:"duration"`
	MaxPatients     int               `gorm:"not null;default:1" json:"max_patients"`
	CurrentBookings int               `gorm:"not null;default:0" json:"current_bookings"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'Available'" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor            Doctor             `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Clinic            Clinic             `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	TokenAppointments []TokenAppointment `gorm:"foreignKey:AppointmentID" json:"token_appointments,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsTerminal reports whether the slot was manually closed
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}

// HasCapacity reports whether another booking fits in this slot
func (a *Appointment) HasCapacity() bool {
	return a.CurrentBookings < a.MaxPatients
}

// AddBooking increments the booking counter and flips the slot to Booked when
// it reaches capacity. Returns ErrSlotAtCapacity instead of overshooting.
func (a *Appointment) AddBooking() error {
	if !a.HasCapacity() {
		return ErrSlotAtCapacity
	}
	a.CurrentBookings++
	if a.CurrentBookings >= a.MaxPatients {
		a.Status = AppointmentStatusBooked
	}
	return nil
}

// ReleaseBooking decrements the booking counter (floored at zero) and flips a
// Booked slot back to Available. Manually Completed/Cancelled slots keep
// their status.
func (a *Appointment) ReleaseBooking() {
	if a.CurrentBookings > 0 {
		a.CurrentBookings--
	}
	if a.Status == AppointmentStatusBooked && a.CurrentBookings < a.MaxPatients {
		a.Status = AppointmentStatusAvailable
	}
}
