package model

import "time"

// Ticket priority levels. Priority is required at creation and must be
// one of these values.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Ticket workflow statuses. Every ticket starts as StatusOpen; the
// service layer accepts any member on update and does not enforce a
// transition order.
const (
	StatusOpen       = "open"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

// ValidPriority reports whether p is a member of the priority enum.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Ticket represents a row in the `tickets` table. ProjectID is a hard
// reference: it must point at an existing project when the ticket is
// created and never changes afterwards. UserID is a weak reference to
// the assignee; it is nil for unassigned tickets and is cleared when
// the referenced user is deleted.
type Ticket struct {
	ID          uint64    `json:"id"`               // tickets.id
	Title       string    `json:"title"`            // tickets.title
	Description string    `json:"description"`      // tickets.description
	Priority    string    `json:"priority"`         // tickets.priority
	Status      string    `json:"status"`           // tickets.status
	ProjectID   uint64    `json:"projectId"`        // tickets.project_id
	UserID      *uint64   `json:"userId,omitempty"` // tickets.user_id (nullable)
	CreatedAt   time.Time `json:"createdAt"`        // tickets.created_at
	UpdatedAt   time.Time `json:"updatedAt"`        // tickets.updated_at
}
