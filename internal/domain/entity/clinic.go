package entity

import "time"

// Clinic represents a clinic location where appointment slots are offered
type Clinic struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	City      string    `gorm:"type:varchar(100);not null;index" json:"city"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email     string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:ClinicID" json:"appointments,omitempty"`
}

func (Clinic) TableName() string {
	return "clinics"
}
