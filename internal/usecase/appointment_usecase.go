package usecase

import (
	"context"
	"errors"
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

var (
	ErrSlotNotFound      = errors.New("appointment slot not found")
	ErrSlotHasBookings   = errors.New("appointment slot has active bookings")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrNotSlotOwner      = errors.New("appointment slot belongs to another doctor")
	ErrDoctorProfileGone = errors.New("doctor profile not found for this account")
)

// SlotOverlapError reports the existing slot a new one would clash with.
type SlotOverlapError struct {
	ExistingID int
	StartTime  string
	EndTime    string
}

func (e *SlotOverlapError) Error() string {
	return fmt.Sprintf("slot overlaps existing slot #%d (%s - %s)", e.ExistingID, e.StartTime, e.EndTime)
}

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	GetAll(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetByDoctor(ctx context.Context, doctorID int) (*dto.AppointmentListResponse, error)
	GetAvailableByDoctor(ctx context.Context, doctorID int) (*dto.AppointmentListResponse, error)
	UpdateStatus(ctx context.Context, id int, status entity.AppointmentStatus) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id int) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	tokenRepo       repository.TokenAppointmentRepository
	doctorRepo      repository.DoctorRepository
	clinicRepo      repository.ClinicRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	tokenRepo repository.TokenAppointmentRepository,
	doctorRepo repository.DoctorRepository,
	clinicRepo repository.ClinicRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		tokenRepo:       tokenRepo,
		doctorRepo:      doctorRepo,
		clinicRepo:      clinicRepo,
		auditService:    auditService,
	}
}

// Create creates a single appointment slot after checking the doctor's
// existing slots on that date for time overlap. Touching slots (one ends
// exactly when the next starts) are allowed.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(req.EndTime)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, ErrInvalidTimeRange
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD", req.Date)
	}

	// Doctors may only create slots for themselves
	if roleID, ok := middleware.GetRoleIDFromContext(ctx); ok && roleID == entity.RoleIDDoctor {
		doctor, err := u.doctorForCurrentUser(ctx)
		if err != nil {
			return nil, err
		}
		if doctor.ID != req.DoctorID {
			return nil, ErrNotSlotOwner
		}
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	clinic, err := u.clinicRepo.FindByID(u.db.WithContext(ctx), req.ClinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	existing, err := u.appointmentRepo.FindByDoctorAndDate(u.db.WithContext(ctx), req.DoctorID, date)
	if err != nil {
		return nil, err
	}
	if err := checkSlotOverlap(existing, start, end); err != nil {
		return nil, err
	}

	maxPatients := req.MaxPatients
	if maxPatients <= 0 {
		maxPatients = 1
	}

	appointment := &entity.Appointment{
		DoctorID:    req.DoctorID,
		ClinicID:    req.ClinicID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Duration:    req.Duration,
		MaxPatients: maxPatients,
		Status:      entity.AppointmentStatusAvailable,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to create appointment slot: %+v", err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	_ = u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionSlotCreate,
		"appointment", fmt.Sprintf("%d", appointment.ID), appointment)

	u.log.Infof("Appointment slot created: id=%d, doctor=%d, date=%s %s-%s",
		appointment.ID, req.DoctorID, req.Date, req.StartTime, req.EndTime)

	return converter.AppointmentToResponse(appointment), nil
}

// GetByID returns one slot with its booked times attached
func (u *appointmentUsecase) GetByID(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrSlotNotFound
	}

	response := converter.AppointmentToResponse(appointment)
	bookedTimes, err := u.tokenRepo.FindBookedTimes(u.db.WithContext(ctx), []int{appointment.ID})
	if err == nil {
		response.BookedTimes = bookedTimes[appointment.ID]
	}
	return response, nil
}

func (u *appointmentUsecase) GetAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list appointment slots: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetByDoctor(ctx context.Context, doctorID int) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list slots for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetAvailableByDoctor is the public slot listing patients browse before
// booking. Each slot carries the times already taken so the client can grey
// them out.
func (u *appointmentUsecase) GetAvailableByDoctor(ctx context.Context, doctorID int) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAvailableByDoctor(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list available slots for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	ids := make([]int, len(appointments))
	for i, a := range appointments {
		ids[i] = a.ID
	}

	bookedTimes, err := u.tokenRepo.FindBookedTimes(u.db.WithContext(ctx), ids)
	if err != nil {
		u.log.Warnf("Failed to load booked times for doctor %d: %+v", doctorID, err)
		bookedTimes = nil
	}

	responses := converter.AppointmentsToResponses(appointments)
	for i := range responses {
		responses[i].BookedTimes = bookedTimes[responses[i].ID]
	}

	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

// UpdateStatus manually overrides a slot's status. Completed and Cancelled
// close the slot for booking regardless of remaining capacity.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id int, status entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
	var updated *entity.Appointment

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrSlotNotFound
		}
		if err := u.checkSlotOwnership(ctx, appointment); err != nil {
			return err
		}

		oldStatus := appointment.Status
		appointment.Status = status
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			return err
		}

		userID, _ := middleware.GetUserIDFromContext(ctx)
		_ = u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionSlotUpdate,
			"appointment", fmt.Sprintf("%d", appointment.ID), string(oldStatus), string(status))

		updated = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(updated), nil
}

// Delete removes an empty slot. Slots with bookings must be cancelled
// instead so patients keep their history.
func (u *appointmentUsecase) Delete(ctx context.Context, id int) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrSlotNotFound
		}
		if err := u.checkSlotOwnership(ctx, appointment); err != nil {
			return err
		}
		if appointment.CurrentBookings > 0 {
			return ErrSlotHasBookings
		}

		rows, err := u.appointmentRepo.Delete(tx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrSlotNotFound
		}

		userID, _ := middleware.GetUserIDFromContext(ctx)
		_ = u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionSlotDelete,
			"appointment", fmt.Sprintf("%d", id), appointment)

		u.log.Infof("Appointment slot deleted: id=%d", id)
		return nil
	})
}

// checkSlotOwnership rejects doctors touching another doctor's slot. Admins
// pass through.
func (u *appointmentUsecase) checkSlotOwnership(ctx context.Context, appointment *entity.Appointment) error {
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok || roleID != entity.RoleIDDoctor {
		return nil
	}
	doctor, err := u.doctorForCurrentUser(ctx)
	if err != nil {
		return err
	}
	if doctor.ID != appointment.DoctorID {
		return ErrNotSlotOwner
	}
	return nil
}

func (u *appointmentUsecase) doctorForCurrentUser(ctx context.Context) (*entity.Doctor, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
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

// checkSlotOverlap returns a SlotOverlapError when [start,end) intersects any
// non-cancelled slot in existing. Minutes since midnight on both sides.
func checkSlotOverlap(existing []entity.Appointment, start, end int) error {
	for i := range existing {
		if existing[i].Status == entity.AppointmentStatusCancelled {
			continue
		}
		s, err := parseClock(existing[i].StartTime)
		if err != nil {
			continue
		}
		e, err := parseClock(existing[i].EndTime)
		if err != nil {
			continue
		}
		if intervalsOverlap(start, end, s, e) {
			return &SlotOverlapError{
				ExistingID: existing[i].ID,
				StartTime:  existing[i].StartTime,
				EndTime:    existing[i].EndTime,
			}
		}
	}
	return nil
}
