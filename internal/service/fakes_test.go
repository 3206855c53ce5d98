package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/mail"
	"github.com/justjoin/justjoin-backend/internal/repository"
)

// In-memory repository fakes backing the service tests. They mirror the
// Postgres implementations' contract: pgx.ErrNoRows for missing rows and
// COALESCE semantics on profile upserts.

type fakeUserRepo struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]*domain.User
	jobSeekers *fakeJobSeekerRepo
	companies  *fakeCompanyRepo
}

func newFakeUserRepo() *fakeUserRepo {
	r := &fakeUserRepo{
		users:      make(map[int64]*domain.User),
		jobSeekers: newFakeJobSeekerRepo(),
		companies:  newFakeCompanyRepo(),
	}
	r.companies.users = r
	return r
}

func (r *fakeUserRepo) insert(user *domain.User) {
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
}

func (r *fakeUserRepo) CreateJobSeeker(ctx context.Context, user *domain.User, profile *domain.JobSeekerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(user)
	profile.UserID = user.ID
	clone := *profile
	r.jobSeekers.profiles[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) CreateCompany(ctx context.Context, user *domain.User, profile *domain.CompanyProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(user)
	profile.UserID = user.ID
	clone := *profile
	r.companies.profiles[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListByType(ctx context.Context, userType domain.UserType) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.users {
		if user.UserType == userType {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) ListIDsByType(ctx context.Context, userType domain.UserType) ([]int64, error) {
	users, _ := r.ListByType(ctx, userType)
	ids := make([]int64, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	return ids, nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Status = status
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = &hash
	return nil
}

func (r *fakeUserRepo) DeleteByEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, user := range r.users {
		if user.Email == email {
			delete(r.users, id)
			delete(r.jobSeekers.profiles, id)
			delete(r.companies.profiles, id)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type fakeJobSeekerRepo struct {
	mu       sync.Mutex
	profiles map[int64]*domain.JobSeekerProfile
}

func newFakeJobSeekerRepo() *fakeJobSeekerRepo {
	return &fakeJobSeekerRepo{profiles: make(map[int64]*domain.JobSeekerProfile)}
}

func (r *fakeJobSeekerRepo) Get(ctx context.Context, userID int64) (*domain.JobSeekerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (r *fakeJobSeekerRepo) Upsert(ctx context.Context, userID int64, update domain.JobSeekerProfileUpdate) (*domain.JobSeekerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		p = &domain.JobSeekerProfile{UserID: userID, CreatedAt: time.Now()}
		r.profiles[userID] = p
	}
	if update.FirstName != nil {
		p.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		p.LastName = *update.LastName
	}
	if update.Phone != nil {
		p.Phone = *update.Phone
	}
	if update.DesiredJobTitle != nil {
		p.DesiredJobTitle = *update.DesiredJobTitle
	}
	if update.ExperienceYears != nil {
		p.ExperienceYears = *update.ExperienceYears
	}
	if update.Skills != nil {
		p.Skills = append([]string(nil), update.Skills...)
	}
	if update.SelfIntroduction != nil {
		p.SelfIntroduction = *update.SelfIntroduction
	}
	if update.InterviewEnabled != nil {
		p.InterviewEnabled = *update.InterviewEnabled
	}
	p.UpdatedAt = time.Now()
	clone := *p
	return &clone, nil
}

type fakeCompanyRepo struct {
	mu       sync.Mutex
	users    *fakeUserRepo
	profiles map[int64]*domain.CompanyProfile
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{profiles: make(map[int64]*domain.CompanyProfile)}
}

func (r *fakeCompanyRepo) Get(ctx context.Context, userID int64) (*domain.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (r *fakeCompanyRepo) Upsert(ctx context.Context, userID int64, update domain.CompanyProfileUpdate) (*domain.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		p = &domain.CompanyProfile{UserID: userID, CreatedAt: time.Now()}
		r.profiles[userID] = p
	}
	if update.CompanyName != nil {
		p.CompanyName = *update.CompanyName
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.ContactEmail != nil {
		p.ContactEmail = *update.ContactEmail
	}
	if update.Phone != nil {
		p.Phone = *update.Phone
	}
	p.UpdatedAt = time.Now()
	clone := *p
	return &clone, nil
}

func (r *fakeCompanyRepo) ListByStatus(ctx context.Context, status domain.UserStatus) ([]repository.CompanyAccount, error) {
	if r.users == nil {
		return nil, nil
	}
	users, _ := r.users.ListByType(ctx, domain.UserTypeCompany)
	var out []repository.CompanyAccount
	for _, user := range users {
		if user.Status != status {
			continue
		}
		account := repository.CompanyAccount{User: user}
		if p, err := r.Get(ctx, user.ID); err == nil {
			account.Profile = *p
		}
		out = append(out, account)
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*domain.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	n.ID = r.nextID
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	clone := *n
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].UserID == userID {
			out = append(out, *r.rows[i])
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) ListAll(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	for i := len(r.rows) - 1; i >= 0; i-- {
		out = append(out, *r.rows[i])
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.rows {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.rows {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) UnreadCount(ctx context.Context, userID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.rows {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.rows {
		if n.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeNotificationRepo) UpdateByHistoryID(ctx context.Context, historyID int64, title, message string, nType domain.NotificationType) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	for _, n := range r.rows {
		if n.SpotHistoryID != nil && *n.SpotHistoryID == historyID {
			n.Title = title
			n.Message = message
			n.Type = nType
			updated++
		}
	}
	return updated, nil
}

func (r *fakeNotificationRepo) DeleteByHistoryID(ctx context.Context, historyID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*domain.Notification
	var removed int64
	for _, n := range r.rows {
		if n.SpotHistoryID != nil && *n.SpotHistoryID == historyID {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	r.rows = kept
	return removed, nil
}

type fakeSpotHistoryRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*domain.SpotNotificationHistory
}

func newFakeSpotHistoryRepo() *fakeSpotHistoryRepo {
	return &fakeSpotHistoryRepo{}
}

func (r *fakeSpotHistoryRepo) Create(ctx context.Context, h *domain.SpotNotificationHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	h.ID = r.nextID
	h.CreatedAt = time.Now()
	clone := *h
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeSpotHistoryRepo) GetByID(ctx context.Context, id int64) (*domain.SpotNotificationHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.rows {
		if h.ID == id {
			clone := *h
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSpotHistoryRepo) List(ctx context.Context) ([]domain.SpotNotificationHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.SpotNotificationHistory
	for i := len(r.rows) - 1; i >= 0; i-- {
		out = append(out, *r.rows[i])
	}
	return out, nil
}

func (r *fakeSpotHistoryRepo) Update(ctx context.Context, id int64, title, message string, nType domain.NotificationType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.rows {
		if h.ID == id {
			h.Title = title
			h.Message = message
			h.Type = nType
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeSpotHistoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.rows {
		if h.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeWorkflowRepo struct {
	mu     sync.Mutex
	nextID int64
	rules  []*domain.WorkflowNotificationRule
}

func newFakeWorkflowRepo() *fakeWorkflowRepo {
	return &fakeWorkflowRepo{}
}

func (r *fakeWorkflowRepo) Upsert(ctx context.Context, rule *domain.WorkflowNotificationRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rules {
		if existing.Trigger == rule.Trigger {
			existing.Name = rule.Name
			existing.Title = rule.Title
			existing.Message = rule.Message
			existing.Type = rule.Type
			existing.Enabled = rule.Enabled
			existing.UpdatedAt = time.Now()
			*rule = *existing
			return nil
		}
	}
	r.nextID++
	rule.ID = r.nextID
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = rule.CreatedAt
	clone := *rule
	r.rules = append(r.rules, &clone)
	return nil
}

func (r *fakeWorkflowRepo) GetByTrigger(ctx context.Context, trigger string) (*domain.WorkflowNotificationRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range r.rules {
		if rule.Trigger == trigger {
			clone := *rule
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeWorkflowRepo) List(ctx context.Context) ([]domain.WorkflowNotificationRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WorkflowNotificationRule
	for _, rule := range r.rules {
		out = append(out, *rule)
	}
	return out, nil
}

func (r *fakeWorkflowRepo) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range r.rules {
		if rule.ID == id {
			rule.Enabled = enabled
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeWorkflowRepo) IncrementSent(ctx context.Context, id int64, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range r.rules {
		if rule.ID == id {
			rule.SentCount += delta
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeWorkflowRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rule := range r.rules {
		if rule.ID == id {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (m *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message(nil), m.sent...)
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
