package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var fe *domain.FieldsError
	if errors.As(err, &fe) {
		return http.StatusUnprocessableEntity, errorResponse{Error: fe.Error(), Fields: fe.Fields}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrSessionInvalid):
		return http.StatusUnauthorized, errorResponse{Error: "please sign in again"}
	case errors.Is(err, domain.ErrRequiredFieldsMissing):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrStepOutOfOrder), errors.Is(err, domain.ErrRoleNotSelected):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrOnboardingNotFound):
		return http.StatusNotFound, errorResponse{Error: "no onboarding in progress"}
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, errorResponse{Error: "profile not found"}
	case errors.Is(err, domain.ErrObjectNotFound):
		return http.StatusNotFound, errorResponse{Error: "object not found"}
	case errors.Is(err, domain.ErrImageCompressionFailed):
		return http.StatusUnprocessableEntity, errorResponse{Error: "image could not be processed"}
	case errors.Is(err, domain.ErrStorageUploadFailed):
		logUpstream(log, err, c)
		return http.StatusBadGateway, errorResponse{Error: "picture upload failed"}
	case errors.Is(err, domain.ErrDatabaseWriteFailed):
		logUpstream(log, err, c)
		return http.StatusBadGateway, errorResponse{Error: "profile could not be saved"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: "user already exists"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func logUpstream(log zerolog.Logger, err error, c echo.Context) {
	log.Warn().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("remote store failure")
}
