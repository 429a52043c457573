package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
	"github.com/cinemyst/onboarding-service/internal/core/ports"
)

type stubAuthService struct {
	signUpFn  func(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error)
	signInFn  func(ctx context.Context, email, password string) (*domain.Session, error)
	signOutFn func(ctx context.Context, session *domain.Session) error
}

func (s *stubAuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
	return s.signUpFn(ctx, in)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubAuthService) SignOut(ctx context.Context, session *domain.Session) error {
	return s.signOutFn(ctx, session)
}

func (s *stubAuthService) ParseToken(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionInvalid
}

func (s *stubAuthService) CurrentSession(ctx context.Context) (*domain.Session, bool) {
	return domain.SessionFromContext(ctx)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// withSession attaches s the way the Auth middleware does.
func withSession(c echo.Context, s *domain.Session) {
	req := c.Request()
	c.SetRequest(req.WithContext(domain.ContextWithSession(req.Context(), s)))
}

func testSession() *domain.Session {
	return &domain.Session{
		AccessToken: "tok",
		TokenID:     "jti-1",
		UserID:      "user-1",
		Email:       "alice@example.com",
		ExpiresAt:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// httpCode renders err through echo's default handler and returns the status.
func httpCode(e *echo.Echo, c echo.Context, rec *httptest.ResponseRecorder, err error) int {
	e.HTTPErrorHandler(err, c)
	return rec.Code
}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
			if in.Email != "alice@example.com" || in.Username != "alice" || in.FullName != "Alice Doe" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.SignUpResult{
				User:    &domain.User{ID: "user-1", Email: in.Email, Username: in.Username, FullName: in.FullName},
				Session: testSession(),
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/auth/signup",
		`{"email":"alice@example.com","password":"secret","username":"alice","full_name":"Alice Doe"}`)

	if err := handler.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" || user["full_name"] != "Alice Doe" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	session, ok := resp["session"].(map[string]any)
	if !ok || session["access_token"] != "tok" || session["token_type"] != "bearer" {
		t.Fatalf("unexpected session payload: %+v", resp["session"])
	}
	if resp["confirmation_required"] != false {
		t.Fatalf("expected confirmation_required=false")
	}
}

func TestAuthHandler_SignUp_ConfirmationRequired(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
			return &ports.SignUpResult{User: &domain.User{ID: "user-1", Email: in.Email}, ConfirmationRequired: true}, nil
		},
	}
	c, rec := jsonContext(e, http.MethodPost, "/auth/signup",
		`{"email":"alice@example.com","password":"secret","username":"alice","full_name":"Alice Doe"}`)

	if err := NewAuthHandler(stub).SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if _, ok := resp["session"]; ok {
		t.Fatalf("expected no session, got %+v", resp["session"])
	}
	if resp["confirmation_required"] != true || resp["message"] == "" {
		t.Fatalf("expected confirmation message, got %+v", resp)
	}
}

func TestAuthHandler_SignUp_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := jsonContext(e, http.MethodPost, "/auth/signup",
		`{"email":"bob@example.com","password":"secret","username":"bob","full_name":"Bob"}`)

	if err := NewAuthHandler(stub).SignUp(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_SignUp_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	cases := []struct {
		name string
		body string
		want int
	}{
		{name: "not json", body: "not-json", want: http.StatusBadRequest},
		{name: "bad email", body: `{"email":"nope","password":"secret","username":"a","full_name":"A"}`, want: http.StatusUnprocessableEntity},
		{name: "short password", body: `{"email":"a@b.co","password":"123","username":"a","full_name":"A"}`, want: http.StatusUnprocessableEntity},
		{name: "missing full name", body: `{"email":"a@b.co","password":"secret","username":"a"}`, want: http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			c, rec := jsonContext(e, http.MethodPost, "/auth/signup", tc.body)
			err := handler.SignUp(c)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := httpCode(e, c, rec, err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return testSession(), nil
		},
	}
	c, rec := jsonContext(e, http.MethodPost, "/auth/signin", `{"email":"alice@example.com","password":"secret"}`)

	if err := NewAuthHandler(stub).SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "tok" || resp.User.ID != "user-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := jsonContext(e, http.MethodPost, "/auth/signin", `{"email":"alice@example.com","password":"wrong"}`)

	if err := NewAuthHandler(stub).SignIn(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_SignOut(t *testing.T) {
	e := newTestEcho()
	var revoked string
	stub := &stubAuthService{
		signOutFn: func(ctx context.Context, session *domain.Session) error {
			revoked = session.TokenID
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/auth/signout", "")
	if err := handler.SignOut(c); httpCode(e, c, rec, err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session")
	}

	c, rec = jsonContext(e, http.MethodPost, "/auth/signout", "")
	withSession(c, testSession())
	if err := handler.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || revoked != "jti-1" {
		t.Fatalf("expected 204 and revoked jti-1, got %d %q", rec.Code, revoked)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c, rec := jsonContext(e, http.MethodGet, "/auth/session", "")
	withSession(c, testSession())
	if err := handler.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if _, ok := resp["access_token"]; ok {
		t.Fatalf("session endpoint must not echo the token")
	}
	if user, _ := resp["user"].(map[string]any); user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", resp["user"])
	}
}
