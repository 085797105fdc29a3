package handler

import (
	"net/http" // HTTP status codes and primitives
	"strconv"  // renders the authenticated user id for the /me lookup

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/tickethub/tickethub/internal/apperr"
	"github.com/tickethub/tickethub/internal/config"
	"github.com/tickethub/tickethub/internal/model"
	"github.com/tickethub/tickethub/internal/service"
	"github.com/tickethub/tickethub/internal/utils"
)

// AuthHandler bundles dependencies for the register/login/me endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *service.UserService
}

func NewAuthHandler(cfg config.Config, users *service.UserService) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// Register creates a user account. The response body is the freshly
// aggregated user view; it never carries the password.
func (h *AuthHandler) Register(c echo.Context) error {
	var req model.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	user, err := h.Users.Register(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login verifies the credentials and returns a signed access token
// carrying the user's id and email.
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	u, err := h.Users.Authenticate(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return apperr.Internal("Failed to issue token")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": access.Token})
}

// Me returns the aggregated view of the authenticated user. The id
// comes from the verified token, not from the client.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return apperr.Unauthorized("Missing bearer token")
	}
	user, err := h.Users.Get(c.Request().Context(), strconv.FormatUint(uid, 10))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
