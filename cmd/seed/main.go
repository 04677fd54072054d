// Command seed fills a development database with sample clinics, doctors,
// assistants and appointment slots.
package main

import (
	"fmt"
	"time"

	"clinic-booking-api/config"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/infrastructure/database"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	seedClinics        = 3
	seedDoctors        = 8
	seedDaysOfSlots    = 5
	slotsPerDoctorDay  = 6
	defaultSeedPass    = "password123"
	slotDurationMins   = 30
	patientsPerSlot    = 3
	firstSlotStartMins = 9 * 60 // 09:00
)

var specializations = []string{
	"General Medicine", "Cardiology", "Dermatology", "Pediatrics",
	"Orthopedics", "ENT", "Neurology", "Ophthalmology",
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if err := database.RunMigrations(cfg.DB); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed(db); err != nil {
		logrus.Fatalf("Seeding failed: %v", err)
	}

	logrus.Info("Seeding complete")
}

func seed(db *gorm.DB) error {
	password, err := bcrypt.GenerateFromPassword([]byte(defaultSeedPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Admin account
		admin := entity.User{
			ID:       uuid.New(),
			RoleID:   entity.RoleIDAdmin,
			Email:    "admin@clinic.local",
			Password: string(password),
			FullName: "Platform Admin",
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		// Clinics
		clinics := make([]entity.Clinic, 0, seedClinics)
		for i := 0; i < seedClinics; i++ {
			clinic := entity.Clinic{
				Name:    fmt.Sprintf("%s Clinic", gofakeit.LastName()),
				Address: gofakeit.Street(),
				City:    gofakeit.City(),
				Phone:   gofakeit.Phone(),
				Email:   gofakeit.Email(),
			}
			if err := tx.Create(&clinic).Error; err != nil {
				return err
			}
			clinics = append(clinics, clinic)
		}

		// Doctors with linked user accounts, one assistant each
		for i := 0; i < seedDoctors; i++ {
			name := gofakeit.Name()
			user := entity.User{
				ID:       uuid.New(),
				RoleID:   entity.RoleIDDoctor,
				Email:    fmt.Sprintf("doctor%d@clinic.local", i+1),
				Password: string(password),
				FullName: name,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			doctor := entity.Doctor{
				Name:            name,
				Specialization:  specializations[i%len(specializations)],
				Experience:      gofakeit.Number(2, 25),
				LicenseNumber:   fmt.Sprintf("LIC-%06d", gofakeit.Number(100000, 999999)),
				Qualification:   "MBBS, MD",
				Bio:             gofakeit.Sentence(12),
				ConsultationFee: decimal.NewFromInt(int64(gofakeit.Number(30, 150))),
				UserID:          user.ID,
			}
			if err := tx.Create(&doctor).Error; err != nil {
				return err
			}

			assistantUser := entity.User{
				ID:       uuid.New(),
				RoleID:   entity.RoleIDAssistant,
				Email:    fmt.Sprintf("assistant%d@clinic.local", i+1),
				Password: string(password),
				FullName: gofakeit.Name(),
			}
			if err := tx.Create(&assistantUser).Error; err != nil {
				return err
			}
			assistant := entity.Assistant{
				Name:     assistantUser.FullName,
				Phone:    gofakeit.Phone(),
				UserID:   assistantUser.ID,
				DoctorID: doctor.ID,
			}
			if err := tx.Create(&assistant).Error; err != nil {
				return err
			}

			if err := seedSlots(tx, &doctor, clinics[i%len(clinics)].ID); err != nil {
				return err
			}
		}

		return nil
	})
}

// seedSlots creates consecutive half-hour slots for the next few days
func seedSlots(tx *gorm.DB, doctor *entity.Doctor, clinicID int) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for day := 0; day < seedDaysOfSlots; day++ {
		date := today.AddDate(0, 0, day)
		for s := 0; s < slotsPerDoctorDay; s++ {
			start := firstSlotStartMins + s*slotDurationMins
			end := start + slotDurationMins
			slot := entity.Appointment{
				DoctorID:    doctor.ID,
				ClinicID:    clinicID,
				Date:        date,
				StartTime:   fmt.Sprintf("%02d:%02d", start/60, start%60),
				EndTime:     fmt.Sprintf("%02d:%02d", end/60, end%60),
				Duration:    slotDurationMins,
				MaxPatients: patientsPerSlot,
				Status:      entity.AppointmentStatusAvailable,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
