package service

import (
	"context"
	"errors"

	"github.com/tickethub/tickethub/internal/apperr"
	"github.com/tickethub/tickethub/internal/model"
	"github.com/tickethub/tickethub/internal/repository"
	"github.com/tickethub/tickethub/internal/utils"
	"github.com/tickethub/tickethub/internal/view"
)

// UserService orchestrates user operations, including registration and
// the credential check used by login. Every read path goes through the
// view builders, which only ever see the password-stripped projection.
type UserService struct {
	users      UserStore
	tickets    TicketStore
	projects   ProjectStore
	bcryptCost int
}

// NewUserService wires a UserService with its stores and the bcrypt
// cost used when hashing new passwords.
func NewUserService(u UserStore, t TicketStore, p ProjectStore, bcryptCost int) *UserService {
	return &UserService{users: u, tickets: t, projects: p, bcryptCost: bcryptCost}
}

// List returns every user with their assigned tickets and the
// deduplicated projects those tickets belong to.
func (s *UserService) List(ctx context.Context) ([]model.UserView, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch users")
	}
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch users")
	}
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch users")
	}
	return view.BuildUserViews(users, tickets, projects), nil
}

// Get returns one user view by its string identifier.
func (s *UserService) Get(ctx context.Context, id string) (*model.UserView, error) {
	uid, ok := model.ParseID(id)
	if !ok {
		return nil, apperr.Validation("Invalid user ID")
	}
	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Failed to fetch user details")
	}
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch user details")
	}
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch user details")
	}
	uv := view.BuildUserView(*u, tickets, projects)
	return &uv, nil
}

// Register validates the payload, hashes the password and inserts the
// user. A duplicate email is a Conflict, not a generic failure. The
// returned view is freshly aggregated (a new user has no tickets or
// projects) and never carries the credential.
func (s *UserService) Register(ctx context.Context, req *model.CreateUserRequest) (*model.UserView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal("Failed to create user")
	}
	u, err := s.users.Create(ctx, req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, apperr.Conflict("User with this email already exists")
		}
		return nil, apperr.Internal("Failed to create user")
	}
	uv := view.BuildUserView(*u, nil, nil)
	return &uv, nil
}

// Authenticate looks the user up by email and verifies the password.
// Both failure modes report the same Unauthorized error so a caller
// cannot probe which of the two was wrong.
func (s *UserService) Authenticate(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, apperr.Internal("Failed to authenticate")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	return u, nil
}

// Update merges the supplied fields into the user and returns the
// freshly aggregated view.
func (s *UserService) Update(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.UserView, error) {
	uid, ok := model.ParseID(id)
	if !ok {
		return nil, apperr.Validation("Invalid user ID")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	u, err := s.users.Update(ctx, uid, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, apperr.NotFound("User not found")
		case errors.Is(err, repository.ErrEmailExists):
			return nil, apperr.Conflict("User with this email already exists")
		}
		return nil, apperr.Internal("Failed to update user")
	}
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to update user")
	}
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to update user")
	}
	uv := view.BuildUserView(*u, tickets, projects)
	return &uv, nil
}

// Delete removes the user; tickets that referenced them survive with
// the assignee cleared (handled transactionally by the store).
func (s *UserService) Delete(ctx context.Context, id string) error {
	uid, ok := model.ParseID(id)
	if !ok {
		return apperr.Validation("Invalid user ID")
	}
	if err := s.users.Delete(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal("Failed to delete user")
	}
	return nil
}
