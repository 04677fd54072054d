package usecase

import (
	"context"
	"fmt"
	"time"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const upcomingWindowDays = 7

type DoctorDashboardUsecase interface {
	CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	GetTodayBookings(ctx context.Context) (*dto.BookingListResponse, error)
	GetUpcomingBookings(ctx context.Context) (*dto.BookingListResponse, error)
}

type doctorDashboardUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	clinicRepo      repository.ClinicRepository
	assistantRepo   repository.AssistantRepository
	appointmentRepo repository.AppointmentRepository
	tokenRepo       repository.TokenAppointmentRepository
	auditService    service.AuditService
}

func NewDoctorDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	clinicRepo repository.ClinicRepository,
	assistantRepo repository.AssistantRepository,
	appointmentRepo repository.AppointmentRepository,
	tokenRepo repository.TokenAppointmentRepository,
	auditService service.AuditService,
) DoctorDashboardUsecase {
	return &doctorDashboardUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		clinicRepo:      clinicRepo,
		assistantRepo:   assistantRepo,
		appointmentRepo: appointmentRepo,
		tokenRepo:       tokenRepo,
		auditService:    auditService,
	}
}

// CreateSchedule cuts [start_time, end_time) into slot_duration-sized slots
// and creates one appointment per sub-interval for the logged-in doctor.
// Sub-intervals that already have a slot (same doctor, clinic, date, start
// time) are skipped instead of duplicated, so regenerating a schedule is
// idempotent. A trailing remainder shorter than slot_duration is dropped.
func (u *doctorDashboardUsecase) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	doctor, err := u.doctorForCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD", req.Date)
	}

	clinic, err := u.clinicRepo.FindByID(u.db.WithContext(ctx), req.ClinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	slots, err := generateTimeSlots(req.StartTime, req.EndTime, req.SlotDuration)
	if err != nil {
		return nil, err
	}

	var (
		created []entity.Appointment
		skipped []string
	)

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, slot := range slots {
			existing, err := u.appointmentRepo.FindBySlotKey(tx, doctor.ID, req.ClinicID, date, slot.Start)
			if err != nil {
				return err
			}
			if existing != nil {
				skipped = append(skipped, slot.Start)
				continue
			}

			appointment := entity.Appointment{
				DoctorID:    doctor.ID,
				ClinicID:    req.ClinicID,
				Date:        date,
				StartTime:   slot.Start,
				EndTime:     slot.End,
				Duration:    req.SlotDuration,
				MaxPatients: req.PatientsPerSlot,
				Status:      entity.AppointmentStatusAvailable,
			}
			if err := u.appointmentRepo.Create(tx, &appointment); err != nil {
				return err
			}
			created = append(created, appointment)
		}

		userID, _ := middleware.GetUserIDFromContext(ctx)
		return u.auditService.Log(ctx, tx, &userID, entity.AuditActionScheduleGenerate, entity.JSON{
			"doctor_id":     doctor.ID,
			"clinic_id":     req.ClinicID,
			"date":          req.Date,
			"created_count": len(created),
			"skipped_count": len(skipped),
		})
	})
	if err != nil {
		u.log.Warnf("Failed to generate schedule for doctor %d: %+v", doctor.ID, err)
		return nil, err
	}

	u.log.Infof("Schedule generated: doctor=%d, date=%s, created=%d, skipped=%d",
		doctor.ID, req.Date, len(created), len(skipped))

	return &dto.ScheduleResponse{
		Created: converter.AppointmentsToResponses(created),
		Skipped: skipped,
		Total:   len(created),
	}, nil
}

// GetStats aggregates the logged-in doctor's dashboard counters
func (u *doctorDashboardUsecase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	doctor, err := u.doctorForCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	stats := &dto.DashboardStatsResponse{}

	if stats.TotalAppointments, err = u.appointmentRepo.CountByDoctorID(db, doctor.ID); err != nil {
		return nil, err
	}
	if stats.TodayAppointments, err = u.appointmentRepo.CountByDoctorAndDate(db, doctor.ID, today); err != nil {
		return nil, err
	}
	if stats.TotalPatients, err = u.tokenRepo.CountByDoctorID(db, doctor.ID); err != nil {
		return nil, err
	}
	if stats.TodayPatients, err = u.tokenRepo.CountByDoctorAndDate(db, doctor.ID, today); err != nil {
		return nil, err
	}
	if stats.PendingAppointments, err = u.tokenRepo.CountByDoctorAndStatus(db, doctor.ID, entity.TokenAppointmentStatusPending); err != nil {
		return nil, err
	}
	if stats.CompletedAppointments, err = u.tokenRepo.CountByDoctorAndStatus(db, doctor.ID, entity.TokenAppointmentStatusCompleted); err != nil {
		return nil, err
	}
	if stats.AssistantsCount, err = u.assistantRepo.CountActiveByDoctorID(db, doctor.ID); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetTodayBookings returns the doctor's bookings for today, ordered by time
func (u *doctorDashboardUsecase) GetTodayBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	doctor, err := u.doctorForCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	bookings, err := u.tokenRepo.FindByDoctorAndDate(u.db.WithContext(ctx), doctor.ID, today)
	if err != nil {
		u.log.Warnf("Failed to load today's bookings for doctor %d: %+v", doctor.ID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// GetUpcomingBookings returns bookings in the next week, capped at 20
func (u *doctorDashboardUsecase) GetUpcomingBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	doctor, err := u.doctorForCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	bookings, err := u.tokenRepo.FindUpcomingByDoctor(u.db.WithContext(ctx), doctor.ID, today, upcomingWindowDays, 20)
	if err != nil {
		u.log.Warnf("Failed to load upcoming bookings for doctor %d: %+v", doctor.ID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *doctorDashboardUsecase) doctorForCurrentUser(ctx context.Context) (*entity.Doctor, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("user not found in context")
	}
	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorProfileGone
	}
	return doctor, nil
}
