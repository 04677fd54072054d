package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		RoleID:    user.RoleID,
		RoleName:  user.Role.RoleName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
