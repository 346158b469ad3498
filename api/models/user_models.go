package models

import (
	"time"

	db "github.com/LedgerPay/LedgerPay-Backend/db/sqlc"
	"github.com/google/uuid"
)

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToUserResponse(rhs *db.User) *UserResponse {
	return &UserResponse{
		ID:             rhs.ID,
		Email:          rhs.Email,
		FullName:       rhs.FullName,
		ProfilePicture: rhs.ProfilePicture,
		IsActive:       rhs.IsActive,
		CreatedAt:      rhs.CreatedAt,
	}
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
