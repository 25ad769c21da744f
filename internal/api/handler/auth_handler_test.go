package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greenheaven/storefront-api/internal/api/middleware"
	"github.com/greenheaven/storefront-api/internal/core/domain"
	"github.com/greenheaven/storefront-api/internal/core/ports"
)

type stubAuthService struct {
	signupErr error
	loginErr  error
	user      *domain.User
	token     string

	lastSignupRole string
}

func (s *stubAuthService) Signup(_ context.Context, username, email, password, role string) (*domain.User, error) {
	s.lastSignupRole = role
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return &domain.User{ID: "user_1", Username: username, Email: email, Role: domain.RoleUser}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.token, s.user, nil
}

func (s *stubAuthService) Profile(_ context.Context, userID string) (*domain.User, error) {
	if s.user == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubAuthService) UpdateProfile(_ context.Context, input ports.UpdateProfileInput) (*domain.User, error) {
	if s.user == nil {
		return nil, domain.ErrUserNotFound
	}
	s.user.Username = input.Username
	s.user.Email = input.Email
	return s.user, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newEcho()
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, time.Hour, false)

	body := `{"username":"alice","email":"alice@example.com","password":"pass123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_InvalidEmail(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	body := `{"username":"alice","email":"not-an-email","password":"pass123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Signup(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_SetsCookieAndToken(t *testing.T) {
	e := newEcho()
	svc := &stubAuthService{
		token: "signed-token",
		user:  &domain.User{ID: "user_1", Username: "alice", Email: "alice@example.com", Role: domain.RoleUser},
	}
	h := NewAuthHandler(svc, time.Hour, false)

	body := `{"email":"alice@example.com","password":"pass123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Fatalf("expected token in body, got %q", resp.Token)
	}
	if resp.User.Username != "alice" || resp.User.Role != domain.RoleUser {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}

	cookies := rec.Result().Cookies()
	var session *http.Cookie
	for _, ck := range cookies {
		if ck.Name == middleware.SessionCookie {
			session = ck
		}
	}
	if session == nil {
		t.Fatalf("session cookie not set")
	}
	if session.Value != "signed-token" || !session.HttpOnly {
		t.Fatalf("unexpected session cookie: %+v", session)
	}
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	e := newEcho()
	svc := &stubAuthService{loginErr: domain.ErrUserNotFound}
	h := NewAuthHandler(svc, time.Hour, false)

	body := `{"email":"ghost@example.com","password":"pass123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.SessionCookie {
		t.Fatalf("expected cleared session cookie, got %+v", cookies)
	}
	if cookies[0].Value != "" || cookies[0].MaxAge != -1 {
		t.Fatalf("cookie not cleared: %+v", cookies[0])
	}
}

func TestUserHandler_Profile(t *testing.T) {
	e := newEcho()
	svc := &stubAuthService{user: &domain.User{ID: "user_1", Username: "alice", Email: "alice@example.com"}}
	h := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")
	c.Set("role", "user")

	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp profileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Username != "alice" || resp.Email != "alice@example.com" {
		t.Fatalf("unexpected profile: %+v", resp)
	}
}

func TestUserHandler_Profile_MissingClaims(t *testing.T) {
	e := newEcho()
	h := NewUserHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Profile(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
