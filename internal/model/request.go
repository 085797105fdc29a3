package model

import (
	"strings"

	"github.com/tickethub/tickethub/internal/apperr"
)

// Request DTOs and their validation. Validate methods are pure: they
// inspect the payload only and never touch the store, so every check
// here runs before the first database round trip. Cross-entity
// existence checks belong to the services.

// CreateProjectRequest is the payload for POST /projects.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate requires a non-empty title and description.
func (r *CreateProjectRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	if r.Title == "" || r.Description == "" {
		return apperr.Validation("Title and description are required")
	}
	return nil
}

// UpdateProjectRequest is the payload for PUT /projects/:id. Nil
// fields were absent from the payload and stay untouched.
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Validate requires at least one recognized field.
func (r *UpdateProjectRequest) Validate() error {
	if r.Title == nil && r.Description == nil {
		return apperr.Validation("At least one field must be provided for update")
	}
	return nil
}

// CreateTicketRequest is the payload for POST /tickets. Any
// client-supplied status is ignored; tickets always start open.
type CreateTicketRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	ProjectID   uint64  `json:"projectId"`
	UserID      *uint64 `json:"userId"`
}

// Validate checks required fields, priority enum membership and
// identifier well-formedness. Whether projectId and userId exist is
// checked later by the ticket service.
func (r *CreateTicketRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	if r.Title == "" || r.Description == "" || r.Priority == "" || r.ProjectID == 0 {
		return apperr.Validation("Required fields are missing")
	}
	if !ValidPriority(r.Priority) {
		return apperr.Validation("Invalid priority level")
	}
	if r.UserID != nil && *r.UserID == 0 {
		return apperr.Validation("Invalid user ID")
	}
	return nil
}

// UpdateTicketRequest is the payload for PUT /tickets/:id. ProjectID
// is deliberately absent: a ticket never moves between projects.
type UpdateTicketRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	UserID      OptionalID `json:"userId"`
}

// Validate requires at least one recognized field and enum membership
// for priority and status when supplied. userId may be a valid id or
// an explicit null, which unassigns the ticket.
func (r *UpdateTicketRequest) Validate() error {
	if r.Title == nil && r.Description == nil && r.Priority == nil && r.Status == nil && !r.UserID.Present {
		return apperr.Validation("At least one field must be provided for update")
	}
	if r.Priority != nil && !ValidPriority(*r.Priority) {
		return apperr.Validation("Invalid priority level")
	}
	if r.Status != nil && !ValidStatus(*r.Status) {
		return apperr.Validation("Invalid status")
	}
	if r.UserID.Present && !r.UserID.Null && r.UserID.Value == 0 {
		return apperr.Validation("Invalid user ID")
	}
	return nil
}

// CreateUserRequest is the payload for POST /register.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate requires all three fields. Emails are normalized to lower
// case so the unique index treats A@x.com and a@x.com as one address.
func (r *CreateUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Name == "" || r.Email == "" || r.Password == "" {
		return apperr.Validation("Name, email, and password are required")
	}
	return nil
}

// UpdateUserRequest is the payload for PUT /users/:id. Passwords are
// not updatable through this endpoint.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Validate requires at least one recognized field.
func (r *UpdateUserRequest) Validate() error {
	if r.Name == nil && r.Email == nil {
		return apperr.Validation("At least one field must be provided for update")
	}
	if r.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*r.Email))
		if e == "" {
			return apperr.Validation("Email must not be empty")
		}
		r.Email = &e
	}
	return nil
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate requires both credentials.
func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" || r.Password == "" {
		return apperr.Validation("Email and password are required")
	}
	return nil
}
