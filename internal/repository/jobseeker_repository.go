package repository

import (
	"context"

	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/persistence"
)

// JobSeekerRepository manages job seeker profile rows.
type JobSeekerRepository interface {
	Get(ctx context.Context, userID int64) (*domain.JobSeekerProfile, error)
	Upsert(ctx context.Context, userID int64, update domain.JobSeekerProfileUpdate) (*domain.JobSeekerProfile, error)
}

type jobSeekerRepository struct {
	pg *persistence.Postgres
}

// NewJobSeekerRepository returns a Postgres-backed implementation.
func NewJobSeekerRepository(pg *persistence.Postgres) JobSeekerRepository {
	return &jobSeekerRepository{pg: pg}
}

const selectJobSeekerQuery = `
    SELECT user_id, first_name, last_name, phone, desired_job_title,
           experience_years, skills, self_introduction, interview_enabled,
           created_at, updated_at
    FROM job_seekers WHERE user_id=$1`

func (r *jobSeekerRepository) Get(ctx context.Context, userID int64) (*domain.JobSeekerProfile, error) {
	var p domain.JobSeekerProfile
	if err := r.pg.Pool.QueryRow(ctx, selectJobSeekerQuery, userID).Scan(
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Phone,
		&p.DesiredJobTitle,
		&p.ExperienceYears,
		&p.Skills,
		&p.SelfIntroduction,
		&p.InterviewEnabled,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert inserts a row when none exists, otherwise updates only the
// supplied columns: COALESCE keeps the stored value for nil fields.
func (r *jobSeekerRepository) Upsert(ctx context.Context, userID int64, update domain.JobSeekerProfileUpdate) (*domain.JobSeekerProfile, error) {
	const query = `
        INSERT INTO job_seekers (user_id, first_name, last_name, phone, desired_job_title,
                                 experience_years, skills, self_introduction, interview_enabled)
        VALUES ($1, COALESCE($2,''), COALESCE($3,''), COALESCE($4,''), COALESCE($5,''),
                COALESCE($6,0), COALESCE($7,'{}'), COALESCE($8,''), COALESCE($9,FALSE))
        ON CONFLICT (user_id) DO UPDATE SET
            first_name        = COALESCE($2, job_seekers.first_name),
            last_name         = COALESCE($3, job_seekers.last_name),
            phone             = COALESCE($4, job_seekers.phone),
            desired_job_title = COALESCE($5, job_seekers.desired_job_title),
            experience_years  = COALESCE($6, job_seekers.experience_years),
            skills            = COALESCE($7, job_seekers.skills),
            self_introduction = COALESCE($8, job_seekers.self_introduction),
            interview_enabled = COALESCE($9, job_seekers.interview_enabled),
            updated_at        = NOW()
        RETURNING user_id, first_name, last_name, phone, desired_job_title,
                  experience_years, skills, self_introduction, interview_enabled,
                  created_at, updated_at`

	var p domain.JobSeekerProfile
	if err := r.pg.Pool.QueryRow(ctx, query,
		userID,
		update.FirstName,
		update.LastName,
		update.Phone,
		update.DesiredJobTitle,
		update.ExperienceYears,
		update.Skills,
		update.SelfIntroduction,
		update.InterviewEnabled,
	).Scan(
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Phone,
		&p.DesiredJobTitle,
		&p.ExperienceYears,
		&p.Skills,
		&p.SelfIntroduction,
		&p.InterviewEnabled,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
