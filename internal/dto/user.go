package dto

import (
	"time"

	"github.com/teamforge/project-tracker-api/internal/models"
)

// UserDTO is the public projection of a user in API responses.
type UserDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UserProfileDTO is the richer projection used by the user directory.
type UserProfileDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"date_joined"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}
}

// ToUserProfileDTO converts a User model to UserProfileDTO
func ToUserProfileDTO(user models.User) UserProfileDTO {
	return UserProfileDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserProfileDTOs converts a slice of users
func ToUserProfileDTOs(users []models.User) []UserProfileDTO {
	dtos := make([]UserProfileDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserProfileDTO(user)
	}
	return dtos
}
