package service

import (
	"context"
	"errors"

	"github.com/tickethub/tickethub/internal/apperr"
	"github.com/tickethub/tickethub/internal/model"
	"github.com/tickethub/tickethub/internal/repository"
	"github.com/tickethub/tickethub/internal/view"
)

// ProjectService orchestrates project operations. Reads pull the three
// collections and join them in memory through the view builders.
type ProjectService struct {
	projects ProjectStore
	tickets  TicketStore
	users    UserStore
}

// NewProjectService wires a ProjectService with its stores.
func NewProjectService(p ProjectStore, t TicketStore, u UserStore) *ProjectService {
	return &ProjectService{projects: p, tickets: t, users: u}
}

// List returns every project with its tickets and their assignees.
// No projects is a valid state: the result is an empty array, not an
// error.
func (s *ProjectService) List(ctx context.Context) ([]model.ProjectView, error) {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch projects")
	}
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch projects")
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch projects")
	}
	return view.BuildProjectViews(projects, tickets, users), nil
}

// Get returns one project view by its string identifier.
func (s *ProjectService) Get(ctx context.Context, id string) (*model.ProjectView, error) {
	pid, ok := model.ParseID(id)
	if !ok {
		return nil, apperr.Validation("Invalid project ID")
	}
	p, err := s.projects.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, apperr.Internal("Failed to fetch project")
	}
	tickets, err := s.tickets.ListByProject(ctx, pid)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch project")
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch project")
	}
	pv := view.BuildProjectView(*p, tickets, users)
	return &pv, nil
}

// Create validates the payload and inserts the project. The store
// re-reads the inserted row, so the returned view reflects what the
// store now holds: DB-assigned id, timestamps and an empty tickets
// array.
func (s *ProjectService) Create(ctx context.Context, req *model.CreateProjectRequest) (*model.ProjectView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.projects.Create(ctx, req.Title, req.Description)
	if err != nil {
		return nil, apperr.Internal("Failed to create project")
	}
	pv := view.BuildProjectView(*p, nil, nil)
	return &pv, nil
}

// Update merges the supplied fields into the project and returns the
// freshly aggregated view.
func (s *ProjectService) Update(ctx context.Context, id string, req *model.UpdateProjectRequest) (*model.ProjectView, error) {
	pid, ok := model.ParseID(id)
	if !ok {
		return nil, apperr.Validation("Invalid project ID")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.projects.Update(ctx, pid, req)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, apperr.Internal("Failed to update project")
	}
	tickets, err := s.tickets.ListByProject(ctx, pid)
	if err != nil {
		return nil, apperr.Internal("Failed to update project")
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to update project")
	}
	pv := view.BuildProjectView(*p, tickets, users)
	return &pv, nil
}

// Delete removes the project and, transactionally with it, every
// ticket that belongs to it.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	pid, ok := model.ParseID(id)
	if !ok {
		return apperr.Validation("Invalid project ID")
	}
	if err := s.projects.Delete(ctx, pid); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return apperr.NotFound("Project not found")
		}
		return apperr.Internal("Failed to delete project")
	}
	return nil
}
