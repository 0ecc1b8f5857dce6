package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/posyandu/lansia-health/internal/core/domain"
)

func callRBAC(t *testing.T, principal interface{}, allowed ...string) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/monthly", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if principal != nil {
		c.Set(PrincipalKey, principal)
	}

	handler := RBAC(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRBAC_AllowsPermittedRole(t *testing.T) {
	err := callRBAC(t, domain.Principal{ID: "1", Role: domain.RoleAdmin}, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("admin should pass the admin gate: %v", err)
	}

	err = callRBAC(t, domain.Principal{ID: "7", Role: domain.RoleKader}, domain.RoleAdmin, domain.RoleKader)
	if err != nil {
		t.Fatalf("kader should pass the shared gate: %v", err)
	}
}

func TestRBAC_ForbidsInsufficientRole(t *testing.T) {
	err := callRBAC(t, domain.Principal{ID: "7", Role: domain.RoleKader}, domain.RoleAdmin)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for kader at an admin gate, got %v", err)
	}
}

func TestRBAC_MissingPrincipal(t *testing.T) {
	err := callRBAC(t, nil, domain.RoleAdmin)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a principal, got %v", err)
	}
}
