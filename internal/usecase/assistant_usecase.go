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

var ErrAssistantNotFound = errors.New("assistant not found")

type AssistantUsecase interface {
	Create(ctx context.Context, req *dto.CreateAssistantRequest) (*dto.AssistantResponse, error)
	GetByID(ctx context.Context, id int) (*dto.AssistantResponse, error)
	GetByDoctor(ctx context.Context, doctorID int) (*dto.AssistantListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateAssistantRequest) (*dto.AssistantResponse, error)
	Delete(ctx context.Context, id int) error
}

type assistantUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	assistantRepo repository.AssistantRepository
	doctorRepo    repository.DoctorRepository
	userRepo      repository.UserRepository
	auditService  service.AuditService
}

func NewAssistantUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	assistantRepo repository.AssistantRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) AssistantUsecase {
	return &assistantUsecase{
		db:            db,
		log:           log,
		assistantRepo: assistantRepo,
		doctorRepo:    doctorRepo,
		userRepo:      userRepo,
		auditService:  auditService,
	}
}

// Create registers an assistant account assigned to one doctor. User and
// assistant rows commit together.
func (u *assistantUsecase) Create(ctx context.Context, req *dto.CreateAssistantRequest) (*dto.AssistantResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

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
		RoleID:   entity.RoleIDAssistant,
	}

	assistant := &entity.Assistant{
		Name:     req.Name,
		Phone:    req.Phone,
		DoctorID: req.DoctorID,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			if isDuplicateKeyError(err, "email") {
				return ErrEmailAlreadyExists
			}
			u.log.Warnf("Failed to create assistant user: %+v", err)
			return err
		}

		assistant.UserID = user.ID
		if err := u.assistantRepo.Create(tx, assistant); err != nil {
			u.log.Warnf("Failed to create assistant: %+v", err)
			return err
		}

		adminID, _ := middleware.GetUserIDFromContext(ctx)
		return u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionAssistantCreate,
			"assistant", fmt.Sprintf("%d", assistant.ID), assistant)
	})
	if err != nil {
		return nil, err
	}

	assistant.User = *user
	u.log.Infof("Assistant created: id=%d, doctor=%d", assistant.ID, req.DoctorID)
	return converter.AssistantToResponse(assistant), nil
}

func (u *assistantUsecase) GetByID(ctx context.Context, id int) (*dto.AssistantResponse, error) {
	assistant, err := u.assistantRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if assistant == nil {
		return nil, ErrAssistantNotFound
	}
	return converter.AssistantToResponse(assistant), nil
}

func (u *assistantUsecase) GetByDoctor(ctx context.Context, doctorID int) (*dto.AssistantListResponse, error) {
	assistants, err := u.assistantRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list assistants for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AssistantListResponse{
		Assistants: converter.AssistantsToResponses(assistants),
		Total:      len(assistants),
	}, nil
}

func (u *assistantUsecase) Update(ctx context.Context, id int, req *dto.UpdateAssistantRequest) (*dto.AssistantResponse, error) {
	var updated *entity.Assistant

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assistant, err := u.assistantRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if assistant == nil {
			return ErrAssistantNotFound
		}

		old := *assistant

		if req.Name != "" {
			assistant.Name = req.Name
		}
		if req.Phone != "" {
			assistant.Phone = req.Phone
		}
		if req.DoctorID != nil {
			doctor, err := u.doctorRepo.FindByID(tx, *req.DoctorID)
			if err != nil {
				return err
			}
			if doctor == nil {
				return ErrDoctorNotFound
			}
			assistant.DoctorID = *req.DoctorID
		}
		if req.IsActive != nil {
			assistant.IsActive = req.IsActive
		}

		if err := u.assistantRepo.Update(tx, assistant); err != nil {
			return err
		}

		if req.Name != "" || req.IsActive != nil {
			user, err := u.userRepo.FindByID(tx, assistant.UserID)
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
				assistant.User = *user
			}
		}

		adminID, _ := middleware.GetUserIDFromContext(ctx)
		if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionAssistantUpdate,
			"assistant", fmt.Sprintf("%d", assistant.ID), old, assistant); err != nil {
			return err
		}

		updated = assistant
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.AssistantToResponse(updated), nil
}

func (u *assistantUsecase) Delete(ctx context.Context, id int) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assistant, err := u.assistantRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if assistant == nil {
			return ErrAssistantNotFound
		}

		rows, err := u.assistantRepo.Delete(tx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrAssistantNotFound
		}

		if err := u.userRepo.Delete(tx, assistant.UserID); err != nil {
			return err
		}

		adminID, _ := middleware.GetUserIDFromContext(ctx)
		if err := u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionAssistantDelete,
			"assistant", fmt.Sprintf("%d", id), assistant); err != nil {
			return err
		}

		u.log.Infof("Assistant deleted: id=%d", id)
		return nil
	})
}
