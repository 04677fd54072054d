package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/service"
	"clinic-booking-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountDisabled    = errors.New("account is disabled")
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		jwtService:   jwtService,
		redisClient:  redisClient,
		auditService: auditService,
	}
}

// RegisterPatient creates a patient account. Doctor and assistant accounts
// are created by admins through their own usecases.
func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		ID:       uuid.New(),
		Email:    strings.ToLower(req.Email),
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDPatient,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			if isDuplicateKeyError(err, "email") {
				return ErrEmailAlreadyExists
			}
			u.log.Warnf("Failed to create user: %+v", err)
			return err
		}

		return u.auditService.Log(ctx, tx, &user.ID, entity.AuditActionUserRegister, entity.JSON{
			"email":   user.Email,
			"role_id": user.RoleID,
		})
	})
	if err != nil {
		return nil, err
	}

	// Fill in the role name for the response; Create does not load relations
	role, err := u.roleRepo.FindByID(u.db.WithContext(ctx), user.RoleID)
	if err == nil && role != nil {
		user.Role = *role
	}

	u.log.Infof("Patient registered: id=%s, email=%s", user.ID, user.Email)
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), strings.ToLower(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.IsActive != nil && !*user.IsActive {
		return nil, ErrAccountDisabled
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	_ = u.auditService.Log(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"email": user.Email,
	})

	return tokens, nil
}

// Logout revokes the current access token and every refresh token the user
// holds, so a stolen refresh token dies with the session.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error {
	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	if err := u.redisClient.Del(ctx, accessKey).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	refreshPattern := fmt.Sprintf("refresh_token:%s:*", userID.String())
	refreshKeys, err := u.redisClient.Keys(ctx, refreshPattern).Result()
	if err != nil {
		u.log.Warnf("Failed to get refresh token keys: %+v", err)
		return err
	}
	if len(refreshKeys) > 0 {
		if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
			u.log.Warnf("Failed to delete refresh tokens: %+v", err)
			return err
		}
	}

	_ = u.auditService.Log(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionUserLogout, nil)
	return nil
}

// RefreshToken rotates a refresh token: the old one is deleted before new
// tokens are issued, so each refresh token works exactly once.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, ErrAccountDisabled
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// issueTokens generates an access+refresh pair and registers both in the
// Redis allow-list with TTLs matching the token expiries
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", user.ID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", user.ID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}
	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:         *converter.UserToResponse(user),
	}, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
