package ports

import (
	"context"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
)

// SignUpInput carries the sign-up form.
type SignUpInput struct {
	Email    string
	Password string
	Username string
	FullName string
}

// SignUpResult is returned by SignUp. Session is nil when the account must
// confirm its email before signing in.
type SignUpResult struct {
	User                 *domain.User
	Session              *domain.Session
	ConfirmationRequired bool
}

type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error)
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context, session *domain.Session) error
	// ParseToken verifies an access token and returns its session.
	ParseToken(ctx context.Context, token string) (*domain.Session, error)
	SessionProvider
}
