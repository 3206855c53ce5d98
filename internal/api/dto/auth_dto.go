package dto

import (
	"time"

	"github.com/justjoin/justjoin-backend/internal/domain"
)

// RegisterJobSeekerRequest payload for POST /api/register-jobseeker.
type RegisterJobSeekerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Language  string `json:"language"`
}

// RegisterCompanyRequest payload for POST /api/register-company.
type RegisterCompanyRequest struct {
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
	Description string `json:"description"`
}

// LoginRequest payload for POST /api/login.
type LoginRequest struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	UserType domain.UserType `json:"userType"`
}

// ChangePasswordRequest payload for POST /api/password/change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ResetPasswordRequest payload for POST /api/password/reset.
type ResetPasswordRequest struct {
	Email    string          `json:"email"`
	UserType domain.UserType `json:"userType"`
}

// CreateAdminRequest payload for admin creation and bootstrap.
type CreateAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RejectCompanyRequest payload for company rejection.
type RejectCompanyRequest struct {
	Reason string `json:"reason"`
}

// UserResponse is the sanitized user shape; the password hash never
// leaves the service.
type UserResponse struct {
	ID        int64             `json:"id"`
	Email     string            `json:"email"`
	UserType  domain.UserType   `json:"userType"`
	Status    domain.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		UserType:  user.UserType,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}
