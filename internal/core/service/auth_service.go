package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
	"github.com/cinemyst/onboarding-service/internal/core/ports"
)

// AuthOptions tunes AuthService.
type AuthOptions struct {
	JWTSecret string
	TokenTTL  time.Duration
	// RequireEmailConfirmation withholds the session on sign-up.
	RequireEmailConfirmation bool
}

// AuthService implements sign-up, sign-in and session handling.
type AuthService struct {
	repo    ports.AuthRepository
	revoked ports.TokenRevocations
	opts    AuthOptions
	log     zerolog.Logger
	now     func() time.Time
}

func NewAuthService(repo ports.AuthRepository, revoked ports.TokenRevocations, opts AuthOptions, log zerolog.Logger) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, revoked: revoked, opts: opts, log: log, now: time.Now}
}

func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     strings.TrimSpace(in.Username),
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user signed up")

	if s.opts.RequireEmailConfirmation {
		return &ports.SignUpResult{User: created, ConfirmationRequired: true}, nil
	}

	session, err := s.issue(created)
	if err != nil {
		return nil, err
	}
	return &ports.SignUpResult{User: created, Session: session}, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

// SignOut revokes the session token until it would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, session *domain.Session) error {
	if session == nil || session.TokenID == "" {
		return domain.ErrSessionInvalid
	}
	if err := s.revoked.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.log.Info().Str("user_id", session.UserID).Msg("user signed out")
	return nil
}

func (s *AuthService) ParseToken(ctx context.Context, token string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return nil, domain.ErrSessionInvalid
	}

	sub, _ := claims.GetSubject()
	jti, _ := claims["jti"].(string)
	email, _ := claims["email"].(string)
	exp, _ := claims.GetExpirationTime()
	if sub == "" || jti == "" || exp == nil {
		return nil, domain.ErrSessionInvalid
	}

	revoked, err := s.revoked.IsRevoked(ctx, jti)
	if err != nil {
		// Fail closed.
		s.log.Warn().Err(err).Str("user_id", sub).Msg("revocation check failed")
		return nil, domain.ErrSessionInvalid
	}
	if revoked {
		return nil, domain.ErrSessionInvalid
	}

	return &domain.Session{
		AccessToken: token,
		TokenID:     jti,
		ExpiresAt:   exp.Time,
		UserID:      sub,
		Email:       email,
	}, nil
}

// CurrentSession returns the session the auth middleware attached to ctx.
func (s *AuthService) CurrentSession(ctx context.Context) (*domain.Session, bool) {
	session, ok := domain.SessionFromContext(ctx)
	if !ok || session.UserID == "" || session.Expired(s.now()) {
		return nil, false
	}
	return session, true
}

func (s *AuthService) issue(user *domain.User) (*domain.Session, error) {
	if user == nil {
		return nil, errors.New("issue session: nil user")
	}
	now := s.now()
	exp := now.Add(s.opts.TokenTTL)
	jti := uuid.NewString()

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"jti":   jti,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.opts.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		AccessToken: signed,
		TokenID:     jti,
		ExpiresAt:   time.Unix(exp.Unix(), 0).UTC(),
		UserID:      user.ID,
		Email:       user.Email,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
