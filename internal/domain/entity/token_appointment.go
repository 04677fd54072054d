package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenAppointmentStatus represents the status of a patient booking
type TokenAppointmentStatus string

const (
	TokenAppointmentStatusConfirmed TokenAppointmentStatus = "Confirmed"
	TokenAppointmentStatusPending   TokenAppointmentStatus = "Pending"
	TokenAppointmentStatusCompleted TokenAppointmentStatus = "Completed"
	TokenAppointmentStatusCancelled TokenAppointmentStatus = "Cancelled"
	TokenAppointmentStatusNoShow    TokenAppointmentStatus = "No Show"
)

// BookingChannel identifies who created a booking and therefore which
// ownership checks applied at creation time.
type BookingChannel string

const (
	ChannelPatient   BookingChannel = "patient"
	ChannelAssistant BookingChannel = "assistant"
	ChannelDoctor    BookingChannel = "doctor"
)

// TokenAppointment represents one patient's reservation against an
// appointment slot, carrying a unique human-readable token number.
type TokenAppointment struct {
	ID              int                    `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientName     string                 `gorm:"type:varchar(255);not null" json:"patient_name"`
	PatientEmail    string                 `gorm:"type:varchar(255);index" json:"patient_email,omitempty"`
	PatientPhone    string                 `gorm:"type:varchar(20);not null" json:"patient_phone"`
	PatientAge      int                    `gorm:"not null" json:"patient_age"`
	PatientGender   string                 `gorm:"type:varchar(10);not null" json:"patient_gender"`
	PatientLocation string                 `gorm:"type:varchar(255)" json:"patient_location,omitempty"`
	Date            time.Time              `gorm:"type:date;not null;index" json:"date"`
	Time            string                 `gorm:"type:time;not null" json:"time"`
	TokenNumber     string                 `gorm:"type:varchar(50);uniqueIndex;not null" json:"token_number"`
	ReasonForVisit  string                 `gorm:"type:text" json:"reason_for_visit,omitempty"`
	Notes           string                 `gorm:"type:text" json:"notes,omitempty"`
	FeeCharged      decimal.Decimal        `gorm:"type:decimal(10,2);not null" json:"fee_charged"`
	Status          TokenAppointmentStatus `gorm:"type:varchar(20);not null;default:'Confirmed';index" json:"status"`
	BookedVia       BookingChannel         `gorm:"type:varchar(20);not null;default:'patient'" json:"booked_via"`
	DoctorID        int                    `gorm:"not null;index" json:"doctor_id"`
	AppointmentID   int                    `gorm:"not null;index" json:"appointment_id"`
	CreatedAt       time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time              `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor      Doctor      `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (TokenAppointment) TableName() string {
	return "token_appointments"
}

// IsCancelled checks if the booking is cancelled
func (t *TokenAppointment) IsCancelled() bool {
	return t.Status == TokenAppointmentStatusCancelled
}

// IsTerminal reports whether the booking can no longer be cancelled
func (t *TokenAppointment) IsTerminal() bool {
	return t.Status == TokenAppointmentStatusCancelled || t.Status == TokenAppointmentStatusCompleted
}

// HoldsSlot reports whether the booking counts against its slot's booking
// counter. Every non-cancelled booking holds its slot, so a status change
// into or out of Cancelled must release or re-acquire capacity.
func (t *TokenAppointment) HoldsSlot() bool {
	return t.Status != TokenAppointmentStatusCancelled
}
