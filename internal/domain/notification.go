package domain

import "time"

// NotificationType classifies the visual severity of a notification.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is a single message delivered to one user's inbox.
// The only state transition is unread -> read; deletion is terminal.
// SpotHistoryID links broadcast notifications back to the spot send that
// produced them; the database cascades deletes along that link.
type Notification struct {
	ID            int64
	UserID        int64
	Title         string
	Message       string
	Type          NotificationType
	IsRead        bool
	SpotHistoryID *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SpotTargetMode enumerates how a spot send chose its recipients.
type SpotTargetMode string

const (
	SpotTargetAll      SpotTargetMode = "all"
	SpotTargetSelected SpotTargetMode = "selected"
	SpotTargetFiltered SpotTargetMode = "filtered"
)

// SpotNotificationHistory is the audit record of one broadcast send.
type SpotNotificationHistory struct {
	ID             int64
	TargetMode     SpotTargetMode
	Title          string
	Message        string
	Type           NotificationType
	RecipientCount int
	CreatedAt      time.Time
}

// Workflow trigger keys. Each key corresponds to a domain event that may
// fire an enabled workflow rule.
const (
	TriggerJobSeekerRegistered = "jobseeker_registered"
	TriggerCompanyApproved     = "company_approved"
	TriggerProfileCompleted    = "profile_completed"
)

// WorkflowNotificationRule is a named, togglable trigger definition with
// its own message template and send counter. Re-saved (upserted) whenever
// an admin edits the workflow.
type WorkflowNotificationRule struct {
	ID        int64
	Trigger   string
	Name      string
	Title     string
	Message   string
	Type      NotificationType
	Enabled   bool
	SentCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}
