// Package router wires HTTP routes to handlers and owns the single
// place where an error becomes an HTTP status and JSON body.
package router

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tickethub/tickethub/internal/apperr"
	"github.com/tickethub/tickethub/internal/handler"
	"github.com/tickethub/tickethub/internal/middleware"
)

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// HTTPErrorHandler translates any error escaping a handler or
// middleware into the {error, message, statusCode} body. Handlers
// return apperr values untouched; echo's own errors (unknown route,
// auth middleware rejections, malformed bodies) are folded into the
// same taxonomy. Every handled error is logged with request context
// before the response is written.
func HTTPErrorHandler(err error, c echo.Context) {
	req := c.Request()
	c.Logger().Errorf("error=%q method=%s uri=%s params=%v query=%v",
		err.Error(), req.Method, req.RequestURI, c.ParamValues(), c.QueryParams())

	if c.Response().Committed {
		return
	}

	var body errorBody
	switch e := err.(type) {
	case *apperr.Error:
		body = errorBody{Error: e.Name, Message: e.Message, StatusCode: e.Status}
	case *echo.HTTPError:
		switch e.Code {
		case http.StatusUnauthorized:
			body = errorBody{
				Error:      "Unauthorized",
				Message:    "Authentication is required to access this resource.",
				StatusCode: http.StatusUnauthorized,
			}
		case http.StatusNotFound:
			body = errorBody{
				Error:      "Not Found",
				Message:    fmt.Sprintf("Route %s:%s not found", req.Method, req.URL.Path),
				StatusCode: http.StatusNotFound,
			}
		case http.StatusBadRequest:
			body = errorBody{
				Error:      "Validation Error",
				Message:    fmt.Sprintf("%v", e.Message),
				StatusCode: http.StatusBadRequest,
			}
		default:
			body = errorBody{
				Error:      http.StatusText(e.Code),
				Message:    fmt.Sprintf("%v", e.Message),
				StatusCode: e.Code,
			}
		}
	default:
		body = errorBody{
			Error:      "Internal Server Error",
			Message:    "Something went wrong",
			StatusCode: http.StatusInternalServerError,
		}
	}

	if req.Method == http.MethodHead {
		_ = c.NoContent(body.StatusCode)
		return
	}
	_ = c.JSON(body.StatusCode, body)
}

// RegisterRoutes maps the full HTTP surface onto the handlers.
// Mutating routes require a valid bearer token; reads are public.
// The cache middleware wraps the public reads only, so authenticated
// responses are never shared between users.
func RegisterRoutes(e *echo.Echo, jwtSecret string, a *handler.AuthHandler, p *handler.ProjectHandler, t *handler.TicketHandler, u *handler.UserHandler, cache echo.MiddlewareFunc) {
	e.HTTPErrorHandler = HTTPErrorHandler

	auth := middleware.JWTAuth(jwtSecret)

	e.GET("/healthz", handler.Health)

	// Users and sessions.
	e.POST("/register", a.Register)
	e.POST("/login", a.Login)
	e.GET("/me", a.Me, auth)
	e.GET("/users", u.List, cache)
	e.GET("/users/:id", u.Get, cache)
	e.PUT("/users/:id", u.Update, auth)
	e.DELETE("/users/:id", u.Delete, auth)

	// Projects.
	e.GET("/projects", p.List, cache)
	e.GET("/projects/:id", p.Get, cache)
	e.POST("/projects", p.Create, auth)
	e.PUT("/projects/:id", p.Update, auth)
	e.DELETE("/projects/:id", p.Delete, auth)

	// Tickets.
	e.GET("/tickets", t.List, cache)
	e.GET("/tickets/:id", t.Get, cache)
	e.GET("/projects/:projectId/tickets", t.ListByProject, cache)
	e.POST("/tickets", t.Create, auth)
	e.PUT("/tickets/:id", t.Update, auth)
	e.DELETE("/tickets/:id", t.Delete, auth)
}
