package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
)

// ctxSession returns the session attached by the Auth middleware. Its absence
// means the route was mounted without the middleware; reject with 401.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, ok := domain.SessionFromContext(c.Request().Context())
	if !ok || session.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return session, nil
}
