package router_test

// End-to-end tests over the full HTTP surface: echo instance, real
// middleware and handlers, in-memory stores standing in for MySQL.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickethub/tickethub/internal/config"
	"github.com/tickethub/tickethub/internal/handler"
	"github.com/tickethub/tickethub/internal/model"
	"github.com/tickethub/tickethub/internal/repository"
	"github.com/tickethub/tickethub/internal/router"
	"github.com/tickethub/tickethub/internal/service"
)

// stubDB backs the three store fakes. It mirrors the SQL contracts the
// services rely on: id-ordered listing, sentinel errors, tickets born
// open, cascade delete and unassignment on user delete.
type stubDB struct {
	projects map[uint64]model.Project
	tickets  map[uint64]model.Ticket
	users    map[uint64]model.User
	nextID   uint64
	clock    time.Time
}

func newStubDB() *stubDB {
	return &stubDB{
		projects: make(map[uint64]model.Project),
		tickets:  make(map[uint64]model.Ticket),
		users:    make(map[uint64]model.User),
		clock:    time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC),
	}
}

func (db *stubDB) tick() time.Time {
	db.clock = db.clock.Add(time.Millisecond)
	return db.clock
}

func (db *stubDB) id() uint64 {
	db.nextID++
	return db.nextID
}

type stubProjects struct{ db *stubDB }
type stubTickets struct{ db *stubDB }
type stubUsers struct{ db *stubDB }

func (s *stubProjects) Create(_ context.Context, title, description string) (*model.Project, error) {
	now := s.db.tick()
	p := model.Project{ID: s.db.id(), Title: title, Description: description, CreatedAt: now, UpdatedAt: now}
	s.db.projects[p.ID] = p
	return &p, nil
}

func (s *stubProjects) GetByID(_ context.Context, id uint64) (*model.Project, error) {
	p, ok := s.db.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	return &p, nil
}

func (s *stubProjects) ListAll(_ context.Context) ([]model.Project, error) {
	out := make([]model.Project, 0, len(s.db.projects))
	for _, p := range s.db.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubProjects) Update(_ context.Context, id uint64, req *model.UpdateProjectRequest) (*model.Project, error) {
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

func (s *stubProjects) Delete(_ context.Context, id uint64) error {
	if _, ok := s.db.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(s.db.projects, id)
	for tid, t := range s.db.tickets {
		if t.ProjectID == id {
			delete(s.db.tickets, tid)
		}
	}
	return nil
}

func (s *stubTickets) Create(_ context.Context, req *model.CreateTicketRequest) (*model.Ticket, error) {
	now := s.db.tick()
	t := model.Ticket{
		ID:          s.db.id(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      model.StatusOpen,
		ProjectID:   req.ProjectID,
		UserID:      req.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.db.tickets[t.ID] = t
	return &t, nil
}

func (s *stubTickets) GetByID(_ context.Context, id uint64) (*model.Ticket, error) {
	t, ok := s.db.tickets[id]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	return &t, nil
}

func (s *stubTickets) ListAll(_ context.Context) ([]model.Ticket, error) {
	out := make([]model.Ticket, 0, len(s.db.tickets))
	for _, t := range s.db.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubTickets) ListByProject(_ context.Context, projectID uint64) ([]model.Ticket, error) {
	out := make([]model.Ticket, 0)
	for _, t := range s.db.tickets {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubTickets) Update(_ context.Context, id uint64, req *model.UpdateTicketRequest) (*model.Ticket, error) {
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
			v := req.UserID.Value
			t.UserID = &v
		}
	}
	t.UpdatedAt = s.db.tick()
	s.db.tickets[id] = t
	return &t, nil
}

func (s *stubTickets) Delete(_ context.Context, id uint64) error {
	if _, ok := s.db.tickets[id]; !ok {
		return repository.ErrTicketNotFound
	}
	delete(s.db.tickets, id)
	return nil
}

func (s *stubUsers) Create(_ context.Context, name, email, passwordHash string) (*model.User, error) {
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

func (s *stubUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	u, ok := s.db.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.db.users {
		if u.Email == email {
			v := u
			return &v, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUsers) ListAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubUsers) Update(_ context.Context, id uint64, req *model.UpdateUserRequest) (*model.User, error) {
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

func (s *stubUsers) Delete(_ context.Context, id uint64) error {
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

// passthrough substitutes for the Redis response cache in tests.
func passthrough(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()

	db := newStubDB()
	projects := &stubProjects{db: db}
	tickets := &stubTickets{db: db}
	users := &stubUsers{db: db}

	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, BcryptCost: 4}

	userSvc := service.NewUserService(users, tickets, projects, cfg.BcryptCost)
	projectSvc := service.NewProjectService(projects, tickets, users)
	ticketSvc := service.NewTicketService(tickets, projects, users, nil)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, cfg.JWTSecret,
		handler.NewAuthHandler(cfg, userSvc),
		handler.NewProjectHandler(projectSvc),
		handler.NewTicketHandler(ticketSvc),
		handler.NewUserHandler(userSvc),
		passthrough)
	return e
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), "body: %s", rec.Body.String())
	return m
}

func registerAndLogin(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/register", "", `{"name":"A","email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPost, "/login", "", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, ok := decode(t, rec)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginProjectLifecycle(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/register", "", `{"name":"A","email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
	created := decode(t, rec)
	assert.Equal(t, "A", created["name"])
	assert.Equal(t, []any{}, created["projects"])
	assert.Equal(t, []any{}, created["tickets"])

	rec = do(e, http.MethodPost, "/login", "", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	// Mutations without a bearer token are rejected before the handler.
	rec = do(e, http.MethodPost, "/projects", "", `{"title":"T","description":"D"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Authentication is required to access this resource.", body["message"])
	assert.Equal(t, float64(http.StatusUnauthorized), body["statusCode"])

	rec = do(e, http.MethodPost, "/projects", token, `{"title":"T","description":"D"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	project := decode(t, rec)
	assert.Equal(t, "T", project["title"])
	assert.Equal(t, []any{}, project["tickets"], "a fresh project carries an empty ticket array")
	id := fmt.Sprintf("%.0f", project["id"].(float64))

	rec = do(e, http.MethodDelete, "/projects/"+id, token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(e, http.MethodGet, "/projects/"+id, "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Project not found", decode(t, rec)["message"])
}

func TestLoginWrongPassword(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodPost, "/register", "", `{"name":"A","email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPost, "/login", "", `{"email":"a@x.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode(t, rec)["message"])

	rec = do(e, http.MethodPost, "/login", "", `{"email":"nobody@x.com","password":"p"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode(t, rec)["message"])
}

func TestMeRequiresToken(t *testing.T) {
	e := newServer(t)
	token := registerAndLogin(t, e)

	rec := do(e, http.MethodGet, "/me", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "a@x.com", decode(t, rec)["email"])

	rec = do(e, http.MethodGet, "/me", "not-a-jwt", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEmptyProjectListIsOK(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodGet, "/projects", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestInvalidIDAndUnknownRoute(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodGet, "/projects/abc", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid project ID", decode(t, rec)["message"])

	rec = do(e, http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Not Found", body["error"])
	assert.Equal(t, "Route GET:/nope not found", body["message"])
}

func TestTicketFlowOverHTTP(t *testing.T) {
	e := newServer(t)
	token := registerAndLogin(t, e)

	rec := do(e, http.MethodPost, "/projects", token, `{"title":"T","description":"D"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	projectID := uint64(decode(t, rec)["id"].(float64))

	// Ignores any client-supplied status and resolves the assignee.
	payload := fmt.Sprintf(`{"title":"bug","description":"d","priority":"high","projectId":%d,"userId":1,"status":"closed"}`, projectID)
	rec = do(e, http.MethodPost, "/tickets", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ticket := decode(t, rec)
	assert.Equal(t, "open", ticket["status"])
	user, ok := ticket["user"].(map[string]any)
	require.True(t, ok, "assignee must be embedded")
	assert.Equal(t, "a@x.com", user["email"])
	ticketID := fmt.Sprintf("%.0f", ticket["id"].(float64))

	rec = do(e, http.MethodPut, "/tickets/"+ticketID, token, `{"userId":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)
	_, hasUser := updated["user"]
	assert.False(t, hasUser, "null userId unassigns the ticket")

	rec = do(e, http.MethodGet, fmt.Sprintf("/projects/%d/tickets", projectID), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	badProject := do(e, http.MethodPost, "/tickets", token, `{"title":"x","description":"d","priority":"low","projectId":999}`)
	require.Equal(t, http.StatusNotFound, badProject.Code)
	assert.Equal(t, "Project not found", decode(t, badProject)["message"])
}

func TestDuplicateEmailOverHTTP(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodPost, "/register", "", `{"name":"A","email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPost, "/register", "", `{"name":"B","email":"A@X.com","password":"q"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "User with this email already exists", body["message"])
	assert.Equal(t, float64(http.StatusConflict), body["statusCode"])
}

func TestMalformedBodyIsValidationError(t *testing.T) {
	e := newServer(t)
	token := registerAndLogin(t, e)

	rec := do(e, http.MethodPost, "/projects", token, `{"title":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation Error", decode(t, rec)["error"])
}

func TestHealthz(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}
