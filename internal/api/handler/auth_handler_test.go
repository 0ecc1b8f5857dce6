package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/posyandu/lansia-health/internal/api"
	"github.com/posyandu/lansia-health/internal/api/handler"
	"github.com/posyandu/lansia-health/internal/core/domain"
)

type stubAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (s *stubAuthService) Register(context.Context, string, string, string, string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(context.Context, string, string, string) (string, *domain.User, error) {
	return s.token, s.user, s.err
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	e := newTestEcho()
	h := handler.NewAuthHandler(&stubAuthService{
		token: "signed-token",
		user:  &domain.User{ID: "7", Username: "kader1", Role: domain.RoleKader},
	})
	e.POST("/auth/login", h.Login)

	rec := doJSON(e, http.MethodPost, "/auth/login", `{"username":"kader1","password":"rahasia"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Token != "signed-token" {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestAuthHandler_LoginErrors(t *testing.T) {
	cases := map[string]struct {
		body     string
		svcErr   error
		wantCode int
		wantMsg  string
	}{
		"bad credentials": {
			body:     `{"username":"kader1","password":"salah"}`,
			svcErr:   domain.ErrInvalidCredentials,
			wantCode: http.StatusUnauthorized,
			wantMsg:  "invalid credentials",
		},
		"rate limited": {
			body:     `{"username":"kader1","password":"rahasia"}`,
			svcErr:   domain.ErrRateLimited,
			wantCode: http.StatusTooManyRequests,
			wantMsg:  "too many attempts, try again later",
		},
		"missing fields": {
			body:     `{"username":"kader1"}`,
			wantCode: http.StatusBadRequest,
		},
		"not json": {
			body:     `username=kader1`,
			wantCode: http.StatusBadRequest,
		},
	}

	for name, tc := range cases {
		e := newTestEcho()
		h := handler.NewAuthHandler(&stubAuthService{err: tc.svcErr})
		e.POST("/auth/login", h.Login)

		rec := doJSON(e, http.MethodPost, "/auth/login", tc.body)
		if rec.Code != tc.wantCode {
			t.Errorf("%s: expected %d, got %d: %s", name, tc.wantCode, rec.Code, rec.Body.String())
			continue
		}

		var resp struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Errorf("%s: decode response: %v", name, err)
			continue
		}
		if resp.Success {
			t.Errorf("%s: error envelope must carry success=false", name)
		}
		if tc.wantMsg != "" && resp.Message != tc.wantMsg {
			t.Errorf("%s: expected message %q, got %q", name, tc.wantMsg, resp.Message)
		}
	}
}

func TestAuthHandler_Register(t *testing.T) {
	e := newTestEcho()
	h := handler.NewAuthHandler(&stubAuthService{
		user: &domain.User{ID: "9", Username: "kader2", Role: domain.RoleKader, Active: true},
	})
	e.POST("/auth/register", h.Register)

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"username":"kader2","password":"panjang-rahasia","full_name":"Ibu Kader","role":"kader"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	cases := map[string]string{
		"short password": `{"username":"kader2","password":"short","role":"kader"}`,
		"unknown role":   `{"username":"kader2","password":"panjang-rahasia","role":"superuser"}`,
		"short username": `{"username":"ab","password":"panjang-rahasia","role":"kader"}`,
	}
	for name, body := range cases {
		e := newTestEcho()
		h := handler.NewAuthHandler(&stubAuthService{})
		e.POST("/auth/register", h.Register)

		rec := doJSON(e, http.MethodPost, "/auth/register", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d: %s", name, rec.Code, rec.Body.String())
		}
	}
}

func TestAuthHandler_RegisterConflict(t *testing.T) {
	e := newTestEcho()
	h := handler.NewAuthHandler(&stubAuthService{err: domain.ErrUserExists})
	e.POST("/auth/register", h.Register)

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"username":"kader2","password":"panjang-rahasia","role":"kader"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}
