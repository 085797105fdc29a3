package service

import (
	"context"
	"errors"
	"time"

	"github.com/tickethub/tickethub/internal/apperr"
	"github.com/tickethub/tickethub/internal/model"
	"github.com/tickethub/tickethub/internal/queue"
	"github.com/tickethub/tickethub/internal/repository"
	"github.com/tickethub/tickethub/internal/view"
)

// TicketService orchestrates ticket operations: payload validation,
// resolution of the referenced project and assignee, store mutation
// and re-aggregation of the result 1:1 with what the store holds.
type TicketService struct {
	tickets  TicketStore
	projects ProjectStore
	users    UserStore
	publish  func(context.Context, queue.TicketCreatedEvent) error
}

// NewTicketService wires a TicketService. publish may be nil to
// disable broker events (tests, broker-less deployments); the default
// wiring passes PublishTicketCreated.
func NewTicketService(t TicketStore, p ProjectStore, u UserStore, publish func(context.Context, queue.TicketCreatedEvent) error) *TicketService {
	return &TicketService{tickets: t, projects: p, users: u, publish: publish}
}

// assignee loads the resolved users for a single ticket so the view
// builder can attach the assignee without scanning the whole user
// collection.
func (s *TicketService) assignee(ctx context.Context, t *model.Ticket) ([]model.User, error) {
	if t.UserID == nil {
		return nil, nil
	}
	u, err := s.users.GetByID(ctx, *t.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Weak reference: a vanished assignee renders as unassigned.
			return nil, nil
		}
		return nil, err
	}
	return []model.User{*u}, nil
}

// List returns every ticket with its assignee resolved.
func (s *TicketService) List(ctx context.Context) ([]model.TicketView, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch tickets")
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch tickets")
	}
	return view.BuildTicketViews(tickets, users), nil
}

// ListByProject returns the tickets of one project. A project with no
// tickets (or an unknown project id of valid syntax) yields an empty
// array.
func (s *TicketService) ListByProject(ctx context.Context, projectID string) ([]model.TicketView, error) {
	pid, ok := model.ParseID(projectID)
	if !ok {
		return nil, apperr.Validation("Invalid project ID")
	}
	tickets, err := s.tickets.ListByProject(ctx, pid)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch project tickets")
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch project tickets")
	}
	return view.BuildTicketViews(tickets, users), nil
}

// Get returns one ticket view by its string identifier.
func (s *TicketService) Get(ctx context.Context, id string) (*model.TicketView, error) {
	tid, ok := model.ParseID(id)
	if !ok {
		return nil, apperr.Validation("Invalid ticket ID")
	}
	t, err := s.tickets.GetByID(ctx, tid)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, apperr.NotFound("Ticket not found")
		}
		return nil, apperr.Internal("Failed to fetch ticket")
	}
	users, err := s.assignee(ctx, t)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch ticket")
	}
	tv := view.BuildTicketView(*t, users)
	return &tv, nil
}

// Create validates the payload, requires the referenced project (and
// assignee, when supplied) to exist, and inserts the ticket with
// status forced to "open". The stored row is re-read before it is
// returned, and a ticket.created event is published fire-and-forget.
func (s *TicketService) Create(ctx context.Context, req *model.CreateTicketRequest) (*model.TicketView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, apperr.Internal("Failed to create ticket")
	}
	if req.UserID != nil {
		if _, err := s.users.GetByID(ctx, *req.UserID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, apperr.NotFound("Assignee user not found")
			}
			return nil, apperr.Internal("Failed to create ticket")
		}
	}
	t, err := s.tickets.Create(ctx, req)
	if err != nil {
		return nil, apperr.Internal("Failed to create ticket")
	}

	if s.publish != nil {
		ev := queue.TicketCreatedEvent{
			TicketID:  t.ID,
			Title:     t.Title,
			Priority:  t.Priority,
			ProjectID: t.ProjectID,
			CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if t.UserID != nil {
			ev.AssigneeID = *t.UserID
		}
		// Detached from the request context: the response must not
		// wait on the broker and a client abort must not cancel the
		// publish.
		go func() { _ = s.publish(context.Background(), ev) }()
	}

	users, err := s.assignee(ctx, t)
	if err != nil {
		return nil, apperr.Internal("Failed to create ticket")
	}
	tv := view.BuildTicketView(*t, users)
	return &tv, nil
}

// Update merges the supplied fields into the ticket. A userId of
// explicit null unassigns the ticket; a non-null userId must reference
// an existing user. projectId never changes.
func (s *TicketService) Update(ctx context.Context, id string, req *model.UpdateTicketRequest) (*model.TicketView, error) {
	tid, ok := model.ParseID(id)
	if !ok {
		return nil, apperr.Validation("Invalid ticket ID")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.UserID.Present && !req.UserID.Null {
		if _, err := s.users.GetByID(ctx, req.UserID.Value); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, apperr.NotFound("Assignee user not found")
			}
			return nil, apperr.Internal("Failed to update ticket")
		}
	}
	t, err := s.tickets.Update(ctx, tid, req)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, apperr.NotFound("Ticket not found")
		}
		return nil, apperr.Internal("Failed to update ticket")
	}
	users, err := s.assignee(ctx, t)
	if err != nil {
		return nil, apperr.Internal("Failed to update ticket")
	}
	tv := view.BuildTicketView(*t, users)
	return &tv, nil
}

// Delete removes a single ticket.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	tid, ok := model.ParseID(id)
	if !ok {
		return apperr.Validation("Invalid ticket ID")
	}
	if err := s.tickets.Delete(ctx, tid); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return apperr.NotFound("Ticket not found")
		}
		return apperr.Internal("Failed to delete ticket")
	}
	return nil
}
