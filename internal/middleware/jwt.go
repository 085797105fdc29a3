package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the acting identity into the request context. The
// provided secret must match the one used when issuing tokens. This
// middleware wraps every mutating route; handlers read the
// authenticated user via `c.Get("user_id")` and `c.Get("email")`.
// Absence or invalidity of the credential is reported as an
// echo.HTTPError with status 401, which the central error handler
// turns into the JSON error body.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header is "Bearer <jwt>". Anything else fails
			// before the handler runs.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing bearer token")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with the shared secret. The callback pins the
			// signing method to HMAC so a token signed with a
			// different algorithm is rejected.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			// JWT numbers decode as float64; normalize the user id to
			// uint64 for handlers.
			uid, ok := claims["user_id"].(float64)
			if !ok || uid <= 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}
			c.Set("user_id", uint64(uid))
			if email, ok := claims["email"].(string); ok {
				c.Set("email", email)
			}
			return next(c)
		}
	}
}
