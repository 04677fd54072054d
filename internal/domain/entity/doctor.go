package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor represents a practicing doctor linked to a user account.
// ConsultationFee is the default fee charged per booking unless the booking
// channel supplies an explicit override.
type Doctor struct {
	ID              int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Experience      int             `gorm:"default:0" json:"experience"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Qualification   string          `gorm:"type:varchar(255);not null" json:"qualification"`
	Bio             string          `gorm:"type:text" json:"bio,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"consultation_fee"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User              User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Assistants        []Assistant        `gorm:"foreignKey:DoctorID" json:"assistants,omitempty"`
	Appointments      []Appointment      `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
	TokenAppointments []TokenAppointment `gorm:"foreignKey:DoctorID" json:"token_appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
