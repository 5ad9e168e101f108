package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, email, password string) (string, *domain.Identity, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	return s.authenticateFn(ctx, email, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password string) (string, *domain.Identity, error) {
			if email != "owner@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.Identity{
				Role:         domain.RoleOwner,
				PropertyID:   "prop_1",
				Email:        email,
				RedirectHint: "/hotel/dashboard",
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"owner@example.com","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	if resp["role"] != "owner" || resp["scope"] != "prop_1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["redirect"] != "/hotel/dashboard" {
		t.Fatalf("unexpected redirect: %v", resp["redirect"])
	}
}

func TestAuthHandler_Login_ErrorPassthrough(t *testing.T) {
	cases := []error{
		domain.ErrInvalidCredentials,
		domain.ErrPendingApproval,
		domain.ErrTooManyAttempts,
	}

	for _, want := range cases {
		e := newTestEcho()
		stub := &stubAuthService{
			authenticateFn: func(ctx context.Context, email, password string) (string, *domain.Identity, error) {
				return "", nil, want
			},
		}
		handler := NewAuthHandler(stub)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"a@example.com","password":"bad"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Login(c)
		if !errors.Is(err, want) {
			t.Errorf("expected %v to pass through, got %v", want, err)
		}
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password string) (string, *domain.Identity, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
