package domain

import "time"

// JobSeekerProfile extends a job_seeker user with domain attributes.
// A skeleton row is created at registration and filled in over time.
type JobSeekerProfile struct {
	UserID           int64
	FirstName        string
	LastName         string
	Phone            string
	DesiredJobTitle  string
	ExperienceYears  int
	Skills           []string
	SelfIntroduction string
	InterviewEnabled bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Complete reports whether the profile carries everything the matching
// flow needs. Used to fire the profile_completed workflow trigger.
func (p *JobSeekerProfile) Complete() bool {
	return p.FirstName != "" && p.LastName != "" && p.DesiredJobTitle != "" && p.SelfIntroduction != ""
}

// JobSeekerProfileUpdate carries a partial update. Nil fields keep their
// stored value (COALESCE semantics in the repository).
type JobSeekerProfileUpdate struct {
	FirstName        *string
	LastName         *string
	Phone            *string
	DesiredJobTitle  *string
	ExperienceYears  *int
	Skills           []string
	SelfIntroduction *string
	InterviewEnabled *bool
}

// CompanyProfile extends a company user. Created in pending status at
// registration, awaiting admin approval.
type CompanyProfile struct {
	UserID       int64
	CompanyName  string
	Description  string
	ContactEmail string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CompanyProfileUpdate carries a partial update for company profiles.
type CompanyProfileUpdate struct {
	CompanyName  *string
	Description  *string
	ContactEmail *string
	Phone        *string
}
