// Package service contains the entity services that orchestrate
// validation, cross-entity existence checks, store mutation and view
// aggregation. Services depend on small store interfaces rather than
// the concrete repositories so tests can run against in-memory fakes.
package service

import (
	"context"

	"github.com/tickethub/tickethub/internal/model"
)

// ProjectStore is the slice of repository.ProjectRepo the services use.
type ProjectStore interface {
	Create(ctx context.Context, title, description string) (*model.Project, error)
	GetByID(ctx context.Context, id uint64) (*model.Project, error)
	ListAll(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, id uint64, req *model.UpdateProjectRequest) (*model.Project, error)
	Delete(ctx context.Context, id uint64) error
}

// TicketStore is the slice of repository.TicketRepo the services use.
type TicketStore interface {
	Create(ctx context.Context, req *model.CreateTicketRequest) (*model.Ticket, error)
	GetByID(ctx context.Context, id uint64) (*model.Ticket, error)
	ListAll(ctx context.Context) ([]model.Ticket, error)
	ListByProject(ctx context.Context, projectID uint64) ([]model.Ticket, error)
	Update(ctx context.Context, id uint64, req *model.UpdateTicketRequest) (*model.Ticket, error)
	Delete(ctx context.Context, id uint64) error
}

// UserStore is the slice of repository.UserRepo the services use.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id uint64, req *model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id uint64) error
}
