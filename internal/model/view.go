package model

// The view types are denormalized read-models computed on every read
// and never persisted.

// TicketView is a Ticket plus its resolved assignee, if any. The User
// field is omitted entirely for unassigned tickets.
type TicketView struct {
	Ticket
	User *PublicUser `json:"user,omitempty"`
}

// ProjectView is a Project plus its tickets in creation order. A
// project with no tickets carries an empty (never null) tickets array.
type ProjectView struct {
	Project
	Tickets []TicketView `json:"tickets"`
}

// UserView is a password-stripped User plus the tickets assigned to
// them and the deduplicated projects those tickets belong to.
type UserView struct {
	PublicUser
	Projects []Project `json:"projects"`
	Tickets  []Ticket  `json:"tickets"`
}
