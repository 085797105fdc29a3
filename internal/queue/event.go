// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// TicketCreatedEvent is published after a ticket has been stored. It
// carries enough context for downstream consumers to log or notify
// without querying the primary database. AssigneeID is zero for
// unassigned tickets.
type TicketCreatedEvent struct {
	TicketID   uint64 `json:"ticket_id"`
	Title      string `json:"title"`
	Priority   string `json:"priority"`
	ProjectID  uint64 `json:"project_id"`
	AssigneeID uint64 `json:"assignee_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}
