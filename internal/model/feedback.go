package model

import "time"

type Priority string

type FeedbackStatus string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

const (
	FeedbackStatusOpen       FeedbackStatus = "Open"
	FeedbackStatusInProgress FeedbackStatus = "In Progress"
	FeedbackStatusResolved   FeedbackStatus = "Resolved"
	FeedbackStatusClosed     FeedbackStatus = "Closed"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackStatusOpen, FeedbackStatusInProgress, FeedbackStatusResolved, FeedbackStatusClosed:
		return true
	}
	return false
}

// StatusEntry is one record in a request's status history. The description may
// encode a custom sub-status as "<Status>: <detail>".
type StatusEntry struct {
	Description string    `json:"description"`
	StatusDate  time.Time `json:"statusDate"`
}

// FeedbackRequest is the central entity. FeedbackStatus is a denormalized
// projection of the latest recognized Status entry; both are written in the
// same statement by the store so they cannot drift. Status is append-only:
// entries are never reordered or truncated, and the history is seeded with a
// "Request created" entry at creation so it is never empty.
type FeedbackRequest struct {
	ID             int64          `json:"id,string"`
	UserID         string         `json:"userId"`
	UserName       string         `json:"userName,omitempty"`
	UserEmail      string         `json:"userEmail,omitempty"`
	ApplicationID  string         `json:"applicationId"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Priority       Priority       `json:"priority"`
	SubmittedDate  time.Time      `json:"submittedDate"`
	FeedbackStatus FeedbackStatus `json:"feedbackStatus"`

	// JiraTicketID is set once reconciliation with the external tracker
	// succeeds and is never cleared afterwards.
	JiraTicketID *string `json:"jiraTicketId,omitempty"`

	Status []StatusEntry `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CurrentStatus returns the denormalized current status, defaulting to Open.
func (f *FeedbackRequest) CurrentStatus() FeedbackStatus {
	if f.FeedbackStatus == "" {
		return FeedbackStatusOpen
	}
	return f.FeedbackStatus
}
