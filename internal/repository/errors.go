// Package repository contains data access logic separated from HTTP
// handlers and services. This file defines sentinel errors shared by
// the repositories so higher layers can map storage failures onto the
// application error taxonomy without inspecting driver errors.
package repository

import "errors"

// ErrProjectNotFound is returned when a project lookup matches no row.
var ErrProjectNotFound = errors.New("project not found")

// ErrTicketNotFound is returned when a ticket lookup matches no row.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when an insert or update would violate
// the unique index on users.email. Handlers translate this into an
// HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")
