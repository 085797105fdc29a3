package service_test

// In-memory implementations of the store interfaces. They honor the
// same contracts as the SQL repositories: creation order listing,
// sentinel errors, status forced to "open" on ticket insert, cascade
// delete of a project's tickets and user-delete unassignment.

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tickethub/tickethub/internal/model"
	"github.com/tickethub/tickethub/internal/repository"
)

type memDB struct {
	mu       sync.Mutex
	projects map[uint64]model.Project
	tickets  map[uint64]model.Ticket
	users    map[uint64]model.User
	nextID   uint64
	clock    time.Time
}

func newMemDB() *memDB {
	return &memDB{
		projects: make(map[uint64]model.Project),
		tickets:  make(map[uint64]model.Ticket),
		users:    make(map[uint64]model.User),
		clock:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so updatedAt always
// moves forward the way CURRENT_TIMESTAMP(6) does between statements.
func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Millisecond)
	return db.clock
}

func (db *memDB) id() uint64 {
	db.nextID++
	return db.nextID
}

type memProjects struct{ db *memDB }
type memTickets struct{ db *memDB }
type memUsers struct{ db *memDB }

func (s *memProjects) Create(_ context.Context, title, description string) (*model.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	now := s.db.tick()
	p := model.Project{ID: s.db.id(), Title: title, Description: description, CreatedAt: now, UpdatedAt: now}
	s.db.projects[p.ID] = p
	return &p, nil
}

func (s *memProjects) GetByID(_ context.Context, id uint64) (*model.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	return &p, nil
}

func (s *memProjects) ListAll(_ context.Context) ([]model.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]model.Project, 0, len(s.db.projects))
	for _, p := range s.db.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memProjects) Update(_ context.Context, id uint64, req *model.UpdateProjectRequest) (*model.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	p.UpdatedAt = s.db.tick()
	s.db.projects[id] = p
	return &p, nil
}

func (s *memProjects) Delete(_ context.Context, id uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	for tid, t := range s.db.tickets {
		if t.ProjectID == id {
			delete(s.db.tickets, tid)
		}
	}
	delete(s.db.projects, id)
	return nil
}

func (s *memTickets) Create(_ context.Context, req *model.CreateTicketRequest) (*model.Ticket, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	now := s.db.tick()
	t := model.Ticket{
		ID:          s.db.id(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      model.StatusOpen,
		ProjectID:   req.ProjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.UserID != nil {
		uid := *req.UserID
		t.UserID = &uid
	}
	s.db.tickets[t.ID] = t
	return &t, nil
}

func (s *memTickets) GetByID(_ context.Context, id uint64) (*model.Ticket, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tickets[id]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	return &t, nil
}

func (s *memTickets) ListAll(_ context.Context) ([]model.Ticket, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]model.Ticket, 0, len(s.db.tickets))
	for _, t := range s.db.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memTickets) ListByProject(_ context.Context, projectID uint64) ([]model.Ticket, error) {
	all, _ := s.ListAll(context.Background())
	out := make([]model.Ticket, 0)
	for _, t := range all {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memTickets) Update(_ context.Context, id uint64, req *model.UpdateTicketRequest) (*model.Ticket, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tickets[id]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.UserID.Present {
		if req.UserID.Null {
			t.UserID = nil
		} else {
			uid := req.UserID.Value
			t.UserID = &uid
		}
	}
	t.UpdatedAt = s.db.tick()
	s.db.tickets[id] = t
	return &t, nil
}

func (s *memTickets) Delete(_ context.Context, id uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.tickets[id]; !ok {
		return repository.ErrTicketNotFound
	}
	delete(s.db.tickets, id)
	return nil
}

func (s *memUsers) Create(_ context.Context, name, email, passwordHash string) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			return nil, repository.ErrEmailExists
		}
	}
	now := s.db.tick()
	u := model.User{ID: s.db.id(), Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	s.db.users[u.ID] = u
	return &u, nil
}

func (s *memUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (s *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUsers) ListAll(_ context.Context) ([]model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]model.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memUsers) Update(_ context.Context, id uint64, req *model.UpdateUserRequest) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if req.Email != nil {
		for oid, other := range s.db.users {
			if oid != id && other.Email == *req.Email {
				return nil, repository.ErrEmailExists
			}
		}
		u.Email = *req.Email
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	u.UpdatedAt = s.db.tick()
	s.db.users[id] = u
	return &u, nil
}

func (s *memUsers) Delete(_ context.Context, id uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.db.users, id)
	for tid, t := range s.db.tickets {
		if t.UserID != nil && *t.UserID == id {
			t.UserID = nil
			s.db.tickets[tid] = t
		}
	}
	return nil
}
