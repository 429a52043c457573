package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
)

// TokenParser verifies access tokens.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*domain.Session, error)
}

// Auth validates the bearer token and attaches the session to the request
// context.
func Auth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			req := c.Request()
			session, err := tokens.ParseToken(req.Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.SetRequest(req.WithContext(domain.ContextWithSession(req.Context(), session)))
			c.Set("user_id", session.UserID)
			c.Set("email", session.Email)

			return next(c)
		}
	}
}
