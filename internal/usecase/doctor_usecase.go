package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrLicenseAlreadyExists  = errors.New("license number already exists")
	ErrDoctorHasAppointments = errors.New("doctor still has appointment slots")
)

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetByID(ctx context.Context, id int) (*dto.DoctorResponse, error)
	GetAll(ctx context.Context) (*dto.DoctorListResponse, error)
	GetPublicDirectory(ctx context.Context) (*dto.DoctorListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id int) error
}

type doctorUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// Create registers a doctor: the user account and the doctor profile are
// created in one transaction so a failed profile never leaves an orphaned
// login.
func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		ID:       uuid.New(),
		Email:    strings.ToLower(req.Email),
		Password: string(hashedPassword),
		FullName: req.Name,
		RoleID:   entity.RoleIDDoctor,
	}

	doctor := &entity.Doctor{
		Name:            req.Name,
		Specialization:  req.Specialization,
		Experience:      req.Experience,
		LicenseNumber:   req.LicenseNumber,
		Qualification:   req.Qualification,
		Bio:             req.Bio,
		ConsultationFee: req.ConsultationFee,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			if isDuplicateKeyError(err, "email") {
				return ErrEmailAlreadyExists
			}
			u.log.Warnf("Failed to create doctor user: %+v", err)
			return err
		}

		doctor.UserID = user.ID
		if err := u.doctorRepo.Create(tx, doctor); err != nil {
			if isDuplicateKeyError(err, "license") {
				return ErrLicenseAlreadyExists
			}
			u.log.Warnf("Failed to create doctor profile: %+v", err)
			return err
		}

		adminID, _ := middleware.GetUserIDFromContext(ctx)
		return u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionDoctorCreate,
			"doctor", fmt.Sprintf("%d", doctor.ID), doctor)
	})
	if err != nil {
		return nil, err
	}

	doctor.User = *user
	u.log.Infof("Doctor created: id=%d, email=%s", doctor.ID, user.Email)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetByID(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAll(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// GetPublicDirectory lists active doctors without account-level fields, for
// the unauthenticated browse-and-book flow
func (u *doctorUsecase) GetPublicDirectory(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list active doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToPublicResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) Update(ctx context.Context, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	var updated *entity.Doctor

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doctor, err := u.doctorRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		old := *doctor

		if req.Name != "" {
			doctor.Name = req.Name
			doctor.User.FullName = req.Name
		}
		if req.Specialization != "" {
			doctor.Specialization = req.Specialization
		}
		if req.Experience != nil {
			doctor.Experience = *req.Experience
		}
		if req.Qualification != "" {
			doctor.Qualification = req.Qualification
		}
		if req.Bio != "" {
			doctor.Bio = req.Bio
		}
		if req.ConsultationFee != nil {
			doctor.ConsultationFee = *req.ConsultationFee
		}

		if err := u.doctorRepo.Update(tx, doctor); err != nil {
			return err
		}

		if req.Name != "" || req.IsActive != nil {
			user, err := u.userRepo.FindByID(tx, doctor.UserID)
			if err != nil {
				return err
			}
			if user != nil {
				if req.Name != "" {
					user.FullName = req.Name
				}
				if req.IsActive != nil {
					user.IsActive = req.IsActive
				}
				if err := u.userRepo.Update(tx, user); err != nil {
					return err
				}
				doctor.User = *user
			}
		}

		adminID, _ := middleware.GetUserIDFromContext(ctx)
		if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionDoctorUpdate,
			"doctor", fmt.Sprintf("%d", doctor.ID), old, doctor); err != nil {
			return err
		}

		updated = doctor
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.DoctorToResponse(updated), nil
}

// Delete removes a doctor and their login. Blocked while the doctor still
// has appointment slots; those must be deleted or cancelled first.
func (u *doctorUsecase) Delete(ctx context.Context, id int) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doctor, err := u.doctorRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		count, err := u.appointmentRepo.CountByDoctorID(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDoctorHasAppointments
		}

		rows, err := u.doctorRepo.Delete(tx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrDoctorNotFound
		}

		if err := u.userRepo.Delete(tx, doctor.UserID); err != nil {
			return err
		}

		adminID, _ := middleware.GetUserIDFromContext(ctx)
		if err := u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionDoctorDelete,
			"doctor", fmt.Sprintf("%d", id), doctor); err != nil {
			return err
		}

		u.log.Infof("Doctor deleted: id=%d", id)
		return nil
	})
}
