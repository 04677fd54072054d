package usecase

import (
	"context"
	"errors"
	"fmt"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrClinicNotFound = errors.New("clinic not found")

type ClinicUsecase interface {
	Create(ctx context.Context, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error)
	GetByID(ctx context.Context, id int) (*dto.ClinicResponse, error)
	GetAll(ctx context.Context) (*dto.ClinicListResponse, error)
	GetAllActive(ctx context.Context) (*dto.ClinicListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateClinicRequest) (*dto.ClinicResponse, error)
	Delete(ctx context.Context, id int) error
}

type clinicUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	clinicRepo   repository.ClinicRepository
	auditService service.AuditService
}

func NewClinicUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	auditService service.AuditService,
) ClinicUsecase {
	return &clinicUsecase{
		db:           db,
		log:          log,
		clinicRepo:   clinicRepo,
		auditService: auditService,
	}
}

func (u *clinicUsecase) Create(ctx context.Context, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error) {
	clinic := &entity.Clinic{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.clinicRepo.Create(tx, clinic); err != nil {
			u.log.Warnf("Failed to create clinic: %+v", err)
			return err
		}

		adminID, _ := middleware.GetUserIDFromContext(ctx)
		return u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionClinicCreate,
			"clinic", fmt.Sprintf("%d", clinic.ID), clinic)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Clinic created: id=%d, name=%s", clinic.ID, clinic.Name)
	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) GetByID(ctx context.Context, id int) (*dto.ClinicResponse, error) {
	clinic, err := u.clinicRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}
	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) GetAll(ctx context.Context) (*dto.ClinicListResponse, error) {
	clinics, err := u.clinicRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list clinics: %+v", err)
		return nil, err
	}

	return &dto.ClinicListResponse{
		Clinics: converter.ClinicsToResponses(clinics),
		Total:   len(clinics),
	}, nil
}

func (u *clinicUsecase) GetAllActive(ctx context.Context) (*dto.ClinicListResponse, error) {
	clinics, err := u.clinicRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list active clinics: %+v", err)
		return nil, err
	}

	return &dto.ClinicListResponse{
		Clinics: converter.ClinicsToResponses(clinics),
		Total:   len(clinics),
	}, nil
}

func (u *clinicUsecase) Update(ctx context.Context, id int, req *dto.UpdateClinicRequest) (*dto.ClinicResponse, error) {
	var updated *entity.Clinic

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clinic, err := u.clinicRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if clinic == nil {
			return ErrClinicNotFound
		}

		old := *clinic

		if req.Name != "" {
			clinic.Name = req.Name
		}
		if req.Address != "" {
			clinic.Address = req.Address
		}
		if req.City != "" {
			clinic.City = req.City
		}
		if req.Phone != "" {
			clinic.Phone = req.Phone
		}
		if req.Email != "" {
			clinic.Email = req.Email
		}
		if req.IsActive != nil {
			clinic.IsActive = req.IsActive
		}

		if err := u.clinicRepo.Update(tx, clinic); err != nil {
			return err
		}

		adminID, _ := middleware.GetUserIDFromContext(ctx)
		if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionClinicUpdate,
			"clinic", fmt.Sprintf("%d", clinic.ID), old, clinic); err != nil {
			return err
		}

		updated = clinic
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.ClinicToResponse(updated), nil
}

func (u *clinicUsecase) Delete(ctx context.Context, id int) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clinic, err := u.clinicRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if clinic == nil {
			return ErrClinicNotFound
		}

		rows, err := u.clinicRepo.Delete(tx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrClinicNotFound
		}

		adminID, _ := middleware.GetUserIDFromContext(ctx)
		if err := u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionClinicDelete,
			"clinic", fmt.Sprintf("%d", id), clinic); err != nil {
			return err
		}

		u.log.Infof("Clinic deleted: id=%d", id)
		return nil
	})
}
