package handler

import (
	"time"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type signUpRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=6"`
	Username string `json:"username"  validate:"required"`
	FullName string `json:"full_name" validate:"required"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type sessionResponse struct {
	AccessToken string              `json:"access_token,omitempty"`
	TokenType   string              `json:"token_type,omitempty"`
	ExpiresAt   time.Time           `json:"expires_at"`
	User        sessionUserResponse `json:"user"`
}

type signUpResponse struct {
	User                 *domain.User     `json:"user"`
	Session              *sessionResponse `json:"session,omitempty"`
	ConfirmationRequired bool             `json:"confirmation_required"`
	Message              string           `json:"message,omitempty"`
}

func toSessionResponse(s *domain.Session, withToken bool) *sessionResponse {
	if s == nil {
		return nil
	}
	resp := &sessionResponse{
		ExpiresAt: s.ExpiresAt.UTC(),
		User:      sessionUserResponse{ID: s.UserID, Email: s.Email},
	}
	if withToken {
		resp.AccessToken = s.AccessToken
		resp.TokenType = "bearer"
	}
	return resp
}
