package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-booking-api/config"
	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingNotOwned     = errors.New("booking does not belong to you")
	ErrBookingTerminal     = errors.New("booking is already completed or cancelled")
	ErrSlotFull            = errors.New("appointment slot is fully booked")
	ErrSlotUnavailable     = errors.New("appointment slot is not open for booking")
	ErrSlotPast            = errors.New("cannot book a past appointment slot")
	ErrSlotDoctorMismatch  = errors.New("appointment slot belongs to another doctor")
	ErrDuplicateBooking    = errors.New("patient already has a booking with this doctor on this date")
	ErrEmailRequired       = errors.New("patient email is required")
	ErrEmailMismatch       = errors.New("patient email must match your account email")
	ErrNotAssignedToDoctor = errors.New("you are not assigned to this doctor")
)

// bookingInput is the channel-neutral form both booking request DTOs reduce
// to before entering the transactional core.
type bookingInput struct {
	AppointmentID   int
	PatientName     string
	PatientEmail    string
	PatientPhone    string
	PatientAge      int
	PatientGender   string
	PatientLocation string
	Time            string
	ReasonForVisit  string
	Notes           string
}

type BookingUsecase interface {
	PatientBook(ctx context.Context, req *dto.PatientBookingRequest) (*dto.BookingResponse, error)
	StaffBook(ctx context.Context, channel entity.BookingChannel, req *dto.StaffBookingRequest) (*dto.BookingResponse, error)
	Cancel(ctx context.Context, bookingID int) error
	UpdateStatus(ctx context.Context, bookingID int, status entity.TokenAppointmentStatus) (*dto.BookingResponse, error)
	GetByID(ctx context.Context, bookingID int) (*dto.BookingResponse, error)
	GetByTokenNumber(ctx context.Context, tokenNumber string) (*dto.BookingResponse, error)
	GetMyBookings(ctx context.Context) (*dto.BookingListResponse, error)
	List(ctx context.Context, filter *repository.TokenAppointmentFilter) (*dto.BookingListResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	cfg             *config.BookingConfig
	tokenRepo       repository.TokenAppointmentRepository
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	assistantRepo   repository.AssistantRepository
	auditService    service.AuditService
	notifications   service.NotificationService
	board           service.LiveBoardPublisher
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg *config.BookingConfig,
	tokenRepo repository.TokenAppointmentRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	assistantRepo repository.AssistantRepository,
	auditService service.AuditService,
	notifications service.NotificationService,
	board service.LiveBoardPublisher,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		cfg:             cfg,
		tokenRepo:       tokenRepo,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		assistantRepo:   assistantRepo,
		auditService:    auditService,
		notifications:   notifications,
		board:           board,
	}
}

// PatientBook books a slot on behalf of the logged-in patient. The request
// email must match the account email so the duplicate guard cannot be dodged
// by booking under a different address.
func (u *bookingUsecase) PatientBook(ctx context.Context, req *dto.PatientBookingRequest) (*dto.BookingResponse, error) {
	email, ok := middleware.GetUserEmailFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	if err := checkPatientEmail(req.PatientEmail, email); err != nil {
		return nil, err
	}

	return u.book(ctx, entity.ChannelPatient, &bookingInput{
		AppointmentID:   req.AppointmentID,
		PatientName:     req.PatientName,
		PatientEmail:    req.PatientEmail,
		PatientPhone:    req.PatientPhone,
		PatientAge:      req.PatientAge,
		PatientGender:   req.PatientGender,
		PatientLocation: req.PatientLocation,
		Time:            req.Time,
		ReasonForVisit:  req.ReasonForVisit,
		Notes:           req.Notes,
	}, nil, 0)
}

// StaffBook books a slot on behalf of a patient, from the assistant or
// doctor channel. Assistants may only book for doctors they are assigned
// to; doctors only for themselves. An empty patient email is a walk-in and
// is accepted when AllowAnonymousBooking is on.
func (u *bookingUsecase) StaffBook(ctx context.Context, channel entity.BookingChannel, req *dto.StaffBookingRequest) (*dto.BookingResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	switch channel {
	case entity.ChannelAssistant:
		assistant, err := u.assistantRepo.FindByUserID(u.db.WithContext(ctx), userID)
		if err != nil {
			return nil, err
		}
		if err := checkAssistantAssignment(assistant, req.DoctorID); err != nil {
			return nil, err
		}
	case entity.ChannelDoctor:
		doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), userID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorProfileGone
		}
		if doctor.ID != req.DoctorID {
			return nil, ErrSlotDoctorMismatch
		}
	default:
		return nil, fmt.Errorf("unsupported booking channel %q", channel)
	}

	if err := checkWalkInEmail(req.PatientEmail, u.cfg.AllowAnonymousBooking); err != nil {
		return nil, err
	}

	return u.book(ctx, channel, &bookingInput{
		AppointmentID:   req.AppointmentID,
		PatientName:     req.PatientName,
		PatientEmail:    req.PatientEmail,
		PatientPhone:    req.PatientPhone,
		PatientAge:      req.PatientAge,
		PatientGender:   req.PatientGender,
		PatientLocation: req.PatientLocation,
		Time:            req.Time,
		ReasonForVisit:  req.ReasonForVisit,
		Notes:           req.Notes,
	}, req.Fee, req.DoctorID)
}

// book is the transactional booking core shared by every channel.
//
// Flow, inside ONE transaction:
//  1. Lock the slot row (SELECT ... FOR UPDATE) and validate it: exists,
//     not manually closed, not in the past, has capacity, and belongs to
//     the expected doctor on staff channels.
//  2. Duplicate guard: reject a second Confirmed booking for the same
//     (doctor, patient email, date). Skipped for walk-ins without email.
//  3. Token number: count this doctor's bookings on the date (cancelled
//     included, so numbers are never reused) and format the next sequence.
//  4. Insert the booking, bump the slot counter, flip the slot to Booked at
//     capacity, write the audit entry.
//
// The row lock serializes concurrent bookings of the same slot, so the
// capacity check and the counter increment cannot race.
func (u *bookingUsecase) book(ctx context.Context, channel entity.BookingChannel, in *bookingInput, feeOverride *decimal.Decimal, expectedDoctorID int) (*dto.BookingResponse, error) {
	var booking *entity.TokenAppointment

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Step 1: lock + validate slot
		slot, err := u.appointmentRepo.FindByIDForUpdate(tx, in.AppointmentID)
		if err != nil {
			return err
		}
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if err := checkSlotBookable(slot, expectedDoctorID, today); err != nil {
			return err
		}

		// Step 2: duplicate guard
		if duplicateGuardApplies(in.PatientEmail) {
			existing, err := u.tokenRepo.FindConfirmedByDoctorEmailDate(tx, slot.DoctorID, in.PatientEmail, slot.Date)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrDuplicateBooking
			}
		}

		// Step 3: token number. The count includes cancelled bookings so a
		// cancel-and-rebook never reissues a token number.
		count, err := u.tokenRepo.CountByDoctorAndDate(tx, slot.DoctorID, slot.Date)
		if err != nil {
			return err
		}
		tokenNumber := formatTokenNumber(slot.DoctorID, slot.Date, int(count)+1)

		// Fee: explicit override on staff channels, doctor's consultation
		// fee otherwise
		doctor, err := u.doctorRepo.FindByID(tx, slot.DoctorID)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}
		fee := resolveFee(doctor.ConsultationFee, feeOverride)

		bookedTime := in.Time
		if bookedTime == "" {
			bookedTime = slot.StartTime
		}

		// Step 4: insert booking, bump counter, audit
		booking = &entity.TokenAppointment{
			PatientName:     in.PatientName,
			PatientEmail:    in.PatientEmail,
			PatientPhone:    in.PatientPhone,
			PatientAge:      in.PatientAge,
			PatientGender:   in.PatientGender,
			PatientLocation: in.PatientLocation,
			Date:            slot.Date,
			Time:            bookedTime,
			TokenNumber:     tokenNumber,
			ReasonForVisit:  in.ReasonForVisit,
			Notes:           in.Notes,
			FeeCharged:      fee,
			Status:          entity.TokenAppointmentStatusConfirmed,
			BookedVia:       channel,
			DoctorID:        slot.DoctorID,
			AppointmentID:   slot.ID,
		}

		if err := u.tokenRepo.Create(tx, booking); err != nil {
			return err
		}

		if err := slot.AddBooking(); err != nil {
			return ErrSlotFull
		}
		if err := u.appointmentRepo.Update(tx, slot); err != nil {
			return err
		}

		userID, hasUser := middleware.GetUserIDFromContext(ctx)
		auditUser := &userID
		if !hasUser {
			auditUser = nil
		}
		return u.auditService.Log(ctx, tx, auditUser, entity.AuditActionBookingCreate, entity.JSON{
			"booking_id":   booking.ID,
			"token_number": booking.TokenNumber,
			"doctor_id":    booking.DoctorID,
			"slot_id":      booking.AppointmentID,
			"channel":      string(channel),
		})
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Booking created: id=%d, token=%s, doctor=%d, channel=%s",
		booking.ID, booking.TokenNumber, booking.DoctorID, channel)

	u.notifications.SendBookingConfirmation(ctx, booking)
	u.publishBoardEvent(service.BoardEventBookingCreated, booking)

	// Reload with doctor+slot for the response; fall back to the bare
	// booking if the reload fails
	full, err := u.tokenRepo.FindByID(u.db.WithContext(ctx), booking.ID)
	if err != nil || full == nil {
		return converter.BookingToResponse(booking), nil
	}
	return converter.BookingToResponse(full), nil
}

// Cancel cancels a booking and releases its slot capacity in the same
// transaction. Patients may only cancel their own bookings; assistants only
// bookings of their assigned doctor; doctors only their own patients'.
func (u *bookingUsecase) Cancel(ctx context.Context, bookingID int) error {
	var cancelled *entity.TokenAppointment

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the booking row first: two concurrent cancels serialize here
		// and the second one sees Cancelled instead of releasing the slot
		// counter twice
		booking, err := u.tokenRepo.FindByIDForUpdate(tx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}

		if err := u.authorizeBookingAccess(ctx, booking); err != nil {
			return err
		}

		releaseSlot, err := applyCancel(booking)
		if err != nil {
			return err
		}

		if releaseSlot {
			slot, err := u.appointmentRepo.FindByIDForUpdate(tx, booking.AppointmentID)
			if err != nil {
				return err
			}
			if slot != nil {
				slot.ReleaseBooking()
				if err := u.appointmentRepo.Update(tx, slot); err != nil {
					return err
				}
			}
		}

		if err := u.tokenRepo.Update(tx, booking); err != nil {
			return err
		}

		userID, hasUser := middleware.GetUserIDFromContext(ctx)
		auditUser := &userID
		if !hasUser {
			auditUser = nil
		}
		cancelled = booking
		return u.auditService.Log(ctx, tx, auditUser, entity.AuditActionBookingCancel, entity.JSON{
			"booking_id":   booking.ID,
			"token_number": booking.TokenNumber,
			"doctor_id":    booking.DoctorID,
			"slot_id":      booking.AppointmentID,
		})
	})
	if err != nil {
		return err
	}

	u.log.Infof("Booking cancelled: id=%d, token=%s", cancelled.ID, cancelled.TokenNumber)

	u.notifications.SendBookingCancellation(ctx, cancelled)
	u.publishBoardEvent(service.BoardEventBookingCancelled, cancelled)
	return nil
}

// UpdateStatus moves a booking between statuses. Transitions into Cancelled
// release slot capacity; transitions out of Cancelled re-acquire it and fail
// with ErrSlotFull when the slot has since filled up.
func (u *bookingUsecase) UpdateStatus(ctx context.Context, bookingID int, status entity.TokenAppointmentStatus) (*dto.BookingResponse, error) {
	var (
		updated   *entity.TokenAppointment
		oldStatus entity.TokenAppointmentStatus
	)

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Same lock order as Cancel: booking row first, then the slot
		booking, err := u.tokenRepo.FindByIDForUpdate(tx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}

		if err := u.authorizeBookingAccess(ctx, booking); err != nil {
			return err
		}

		oldStatus = booking.Status
		if oldStatus == status {
			updated = booking
			return nil
		}

		if delta := applyStatusChange(booking, status); delta != 0 {
			slot, err := u.appointmentRepo.FindByIDForUpdate(tx, booking.AppointmentID)
			if err != nil {
				return err
			}
			if slot != nil {
				if delta > 0 {
					if err := slot.AddBooking(); err != nil {
						return ErrSlotFull
					}
				} else {
					slot.ReleaseBooking()
				}
				if err := u.appointmentRepo.Update(tx, slot); err != nil {
					return err
				}
			}
		}

		if err := u.tokenRepo.Update(tx, booking); err != nil {
			return err
		}

		userID, hasUser := middleware.GetUserIDFromContext(ctx)
		auditUser := &userID
		if !hasUser {
			auditUser = nil
		}
		updated = booking
		return u.auditService.Log(ctx, tx, auditUser, entity.AuditActionBookingStatusSet, entity.JSON{
			"booking_id":   booking.ID,
			"token_number": booking.TokenNumber,
			"old_status":   string(oldStatus),
			"new_status":   string(status),
		})
	})
	if err != nil {
		return nil, err
	}

	if oldStatus != updated.Status {
		u.log.Infof("Booking status changed: id=%d, %s -> %s", updated.ID, oldStatus, updated.Status)
		u.notifications.SendStatusChange(ctx, updated, oldStatus)
		u.publishBoardEvent(service.BoardEventStatusChanged, updated)
	}

	// Reload with doctor+slot for the response; the locked row carries no
	// relations
	if full, err := u.tokenRepo.FindByID(u.db.WithContext(ctx), updated.ID); err == nil && full != nil {
		updated = full
	}
	return converter.BookingToResponse(updated), nil
}

func (u *bookingUsecase) GetByID(ctx context.Context, bookingID int) (*dto.BookingResponse, error) {
	booking, err := u.tokenRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if err := u.authorizeBookingAccess(ctx, booking); err != nil {
		return nil, err
	}
	return converter.BookingToResponse(booking), nil
}

// GetByTokenNumber looks a booking up by its human-readable token. Used by
// front-desk staff when a patient shows their confirmation.
func (u *bookingUsecase) GetByTokenNumber(ctx context.Context, tokenNumber string) (*dto.BookingResponse, error) {
	booking, err := u.tokenRepo.FindByTokenNumber(u.db.WithContext(ctx), tokenNumber)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if err := u.authorizeBookingAccess(ctx, booking); err != nil {
		return nil, err
	}
	return converter.BookingToResponse(booking), nil
}

// GetMyBookings returns every booking made under the logged-in patient's
// email, newest first
func (u *bookingUsecase) GetMyBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	email, ok := middleware.GetUserEmailFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	bookings, err := u.tokenRepo.FindByPatientEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find bookings for %s: %+v", email, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// List returns bookings matching the filter. Staff only; doctors are pinned
// to their own bookings and assistants to their assigned doctor's regardless
// of the filter.
func (u *bookingUsecase) List(ctx context.Context, filter *repository.TokenAppointmentFilter) (*dto.BookingListResponse, error) {
	if filter == nil {
		filter = &repository.TokenAppointmentFilter{}
	}

	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	userID, _ := middleware.GetUserIDFromContext(ctx)

	switch roleID {
	case entity.RoleIDDoctor:
		doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), userID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorProfileGone
		}
		filter.DoctorID = doctor.ID
	case entity.RoleIDAssistant:
		assistant, err := u.assistantRepo.FindByUserID(u.db.WithContext(ctx), userID)
		if err != nil {
			return nil, err
		}
		if assistant == nil {
			return nil, ErrNotAssignedToDoctor
		}
		filter.DoctorID = assistant.DoctorID
	}

	bookings, err := u.tokenRepo.FindWithFilters(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// authorizeBookingAccess resolves the caller into a bookingActor and runs
// the ownership matrix (checkBookingAccess) against the booking.
func (u *bookingUsecase) authorizeBookingAccess(ctx context.Context, booking *entity.TokenAppointment) error {
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return errors.New("role not found in context")
	}

	actor := bookingActor{roleID: roleID}

	switch roleID {
	case entity.RoleIDDoctor:
		userID, _ := middleware.GetUserIDFromContext(ctx)
		doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), userID)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrBookingNotOwned
		}
		actor.doctorID = doctor.ID
	case entity.RoleIDAssistant:
		userID, _ := middleware.GetUserIDFromContext(ctx)
		assistant, err := u.assistantRepo.FindByUserID(u.db.WithContext(ctx), userID)
		if err != nil {
			return err
		}
		if assistant == nil {
			return ErrBookingNotOwned
		}
		actor.doctorID = assistant.DoctorID
	case entity.RoleIDPatient:
		actor.email, _ = middleware.GetUserEmailFromContext(ctx)
	}

	return checkBookingAccess(actor, booking)
}

func (u *bookingUsecase) publishBoardEvent(eventType string, booking *entity.TokenAppointment) {
	if u.board == nil {
		return
	}
	u.board.Publish(&service.BoardEvent{
		Type:     eventType,
		DoctorID: booking.DoctorID,
		Date:     booking.Date.Format("2006-01-02"),
		Payload: map[string]interface{}{
			"token_number": booking.TokenNumber,
			"status":       string(booking.Status),
			"time":         booking.Time,
		},
	})
}
