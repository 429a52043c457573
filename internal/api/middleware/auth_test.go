package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
)

type stubTokenParser struct {
	sessions map[string]*domain.Session
	calls    int
}

func (p *stubTokenParser) ParseToken(_ context.Context, token string) (*domain.Session, error) {
	p.calls++
	if s, ok := p.sessions[token]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionInvalid
}

func newParser() *stubTokenParser {
	return &stubTokenParser{sessions: map[string]*domain.Session{
		"good-token": {
			AccessToken: "good-token",
			TokenID:     "jti-1",
			UserID:      "user-1",
			Email:       "alice@example.com",
			ExpiresAt:   time.Now().Add(time.Hour),
		},
	}}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(newParser())
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get("email") != "alice@example.com" {
			t.Fatalf("email not set")
		}
		session, ok := domain.SessionFromContext(c.Request().Context())
		if !ok || session.TokenID != "jti-1" {
			t.Fatalf("session not attached to request context: %+v", session)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newParser())(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cases := []struct {
		name       string
		header     string
		wantParsed bool
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Token abc"},
		{name: "no token", header: "Bearer"},
		{name: "invalid token", header: "Bearer not-a-token", wantParsed: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			parser := newParser()
			handler := Auth(parser)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if got := parser.calls > 0; got != tc.wantParsed {
				t.Fatalf("expected parser called=%v, got %v", tc.wantParsed, got)
			}
		})
	}
}
