package domain

import "time"

// UserType distinguishes the three account kinds on the platform.
type UserType string

const (
	UserTypeJobSeeker UserType = "job_seeker"
	UserTypeCompany   UserType = "company"
	UserTypeAdmin     UserType = "admin"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusRejected UserStatus = "rejected"
)

// User is the canonical identity record for job seekers, companies and admins.
// PasswordHash is nil for company accounts that have not been approved yet.
type User struct {
	ID           int64
	Email        string
	PasswordHash *string
	UserType     UserType
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can be logged into.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
