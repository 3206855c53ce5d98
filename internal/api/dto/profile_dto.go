package dto

import (
	"github.com/justjoin/justjoin-backend/internal/domain"
)

// UpdateProfileRequest carries a partial profile update. Absent fields
// stay nil and keep their stored value; the service picks the fields
// matching the caller's user type.
type UpdateProfileRequest struct {
	// job seeker fields
	FirstName        *string  `json:"firstName"`
	LastName         *string  `json:"lastName"`
	Phone            *string  `json:"phone"`
	DesiredJobTitle  *string  `json:"desiredJobTitle"`
	ExperienceYears  *int     `json:"experienceYears"`
	Skills           []string `json:"skills"`
	SelfIntroduction *string  `json:"selfIntroduction"`
	InterviewEnabled *bool    `json:"interviewEnabled"`

	// company fields
	CompanyName  *string `json:"companyName"`
	Description  *string `json:"description"`
	ContactEmail *string `json:"contactEmail"`
}

// JobSeekerUpdate maps the job seeker part of the request.
func (r *UpdateProfileRequest) JobSeekerUpdate() *domain.JobSeekerProfileUpdate {
	return &domain.JobSeekerProfileUpdate{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Phone:            r.Phone,
		DesiredJobTitle:  r.DesiredJobTitle,
		ExperienceYears:  r.ExperienceYears,
		Skills:           r.Skills,
		SelfIntroduction: r.SelfIntroduction,
		InterviewEnabled: r.InterviewEnabled,
	}
}

// CompanyUpdate maps the company part of the request.
func (r *UpdateProfileRequest) CompanyUpdate() *domain.CompanyProfileUpdate {
	return &domain.CompanyProfileUpdate{
		CompanyName:  r.CompanyName,
		Description:  r.Description,
		ContactEmail: r.ContactEmail,
		Phone:        r.Phone,
	}
}
