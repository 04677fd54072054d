package entity

import (
	"time"

	"github.com/google/uuid"
)

// Assistant represents a doctor's assistant linked to a user account.
// An assistant may only manage bookings for the doctor they are assigned to.
type Assistant struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	DoctorID  int       `gorm:"not null;index" json:"doctor_id"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Assistant) TableName() string {
	return "assistants"
}
