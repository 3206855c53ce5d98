package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/events"
	"github.com/justjoin/justjoin-backend/internal/persistence"
	"github.com/justjoin/justjoin-backend/internal/repository"
)

// Profile is the type-dispatched view returned by GetProfile. Exactly one
// of JobSeeker/Company is set, matching UserType.
type Profile struct {
	UserType  domain.UserType          `json:"user_type"`
	JobSeeker *domain.JobSeekerProfile `json:"job_seeker,omitempty"`
	Company   *domain.CompanyProfile   `json:"company,omitempty"`
}

// ProfileUpdateInput carries the partial update for either profile kind;
// the service picks the part matching the user's type.
type ProfileUpdateInput struct {
	JobSeeker *domain.JobSeekerProfileUpdate
	Company   *domain.CompanyProfileUpdate
}

// ProfileService reads and upserts type-specific profiles, with an
// advisory read cache in front of the job seeker and company tables.
type ProfileService struct {
	users      repository.UserRepository
	jobSeekers repository.JobSeekerRepository
	companies  repository.CompanyRepository
	cache      *persistence.Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProfileService builds the service.
func NewProfileService(users repository.UserRepository, jobSeekers repository.JobSeekerRepository, companies repository.CompanyRepository, cache *persistence.Cache, dispatcher events.Dispatcher, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		users:      users,
		jobSeekers: jobSeekers,
		companies:  companies,
		cache:      cache,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func profileCacheKey(userID int64) string {
	return fmt.Sprintf("profile:%d", userID)
}

// GetProfile dispatches on the user's type. The cache is advisory: a
// miss or stale entry always falls through to the database.
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var cached Profile
	if s.cache.GetJSON(ctx, profileCacheKey(userID), &cached) {
		return &cached, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile := &Profile{UserType: user.UserType}
	switch user.UserType {
	case domain.UserTypeJobSeeker:
		p, err := s.jobSeekers.Get(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
		profile.JobSeeker = p
	case domain.UserTypeCompany:
		p, err := s.companies.Get(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
		profile.Company = p
	default:
		return nil, ErrProfileNotFound
	}

	s.cache.SetJSON(ctx, profileCacheKey(userID), profile)
	return profile, nil
}

// UpdateProfile upserts the profile matching the user's type: a missing
// row is inserted, an existing one keeps every column the update leaves
// nil. Completing a job seeker profile fires the profile_completed
// trigger once, on the transition.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, input ProfileUpdateInput) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile := &Profile{UserType: user.UserType}
	switch user.UserType {
	case domain.UserTypeJobSeeker:
		if input.JobSeeker == nil {
			return nil, ErrProfileNotFound
		}
		wasComplete := false
		if prev, err := s.jobSeekers.Get(ctx, userID); err == nil {
			wasComplete = prev.Complete()
		}

		p, err := s.jobSeekers.Upsert(ctx, userID, *input.JobSeeker)
		if err != nil {
			return nil, err
		}
		profile.JobSeeker = p

		if !wasComplete && p.Complete() {
			s.publishCompleted(ctx, user)
		}
	case domain.UserTypeCompany:
		if input.Company == nil {
			return nil, ErrProfileNotFound
		}
		p, err := s.companies.Upsert(ctx, userID, *input.Company)
		if err != nil {
			return nil, err
		}
		profile.Company = p
	default:
		return nil, ErrProfileNotFound
	}

	s.cache.Delete(ctx, profileCacheKey(userID))
	return profile, nil
}

func (s *ProfileService) publishCompleted(ctx context.Context, user *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventProfileCompleted,
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now(),
	})
}
