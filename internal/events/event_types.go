package events

import (
	"time"
)

// EventType enumerates supported event identifiers. The values double as
// workflow trigger keys in workflow_notification_history.
type EventType string

const (
	EventJobSeekerRegistered EventType = "jobseeker_registered"
	EventCompanyRegistered   EventType = "company_registered"
	EventCompanyApproved     EventType = "company_approved"
	EventCompanyRejected     EventType = "company_rejected"
	EventProfileCompleted    EventType = "profile_completed"
)

// Event represents a domain event emitted by services. UserID names the
// user the event is about, which is also the workflow notification target.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Email     string      `json:"email"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// CompanyRejectedPayload payload.
type CompanyRejectedPayload struct {
	Reason string `json:"reason"`
}
