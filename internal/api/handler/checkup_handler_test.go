package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/posyandu/lansia-health/internal/api/handler"
	"github.com/posyandu/lansia-health/internal/api/middleware"
	"github.com/posyandu/lansia-health/internal/core/domain"
	"github.com/posyandu/lansia-health/internal/core/ports"
)

type stubCheckupService struct {
	input   ports.CreateCheckupInput
	checkup *domain.Checkup
	list    *ports.ListCheckupsResult
	err     error
}

func (s *stubCheckupService) CreateCheckup(_ context.Context, input ports.CreateCheckupInput) (*domain.Checkup, error) {
	s.input = input
	return s.checkup, s.err
}

func (s *stubCheckupService) GetCheckup(context.Context, string) (*domain.Checkup, error) {
	return s.checkup, s.err
}

func (s *stubCheckupService) ListCheckups(context.Context, ports.ListCheckupsFilter) (*ports.ListCheckupsResult, error) {
	return s.list, s.err
}

// withPrincipal injects the principal the Auth middleware would have set.
func withPrincipal(principal domain.Principal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.PrincipalKey, principal)
			return next(c)
		}
	}
}

func TestCheckupHandler_CreateUsesPrincipalAsRecorder(t *testing.T) {
	svc := &stubCheckupService{checkup: &domain.Checkup{ID: "chk-1", ProfileID: "64f1a2", Systolic: 150, Diastolic: 90}}

	e := newTestEcho()
	h := handler.NewCheckupHandler(svc)
	e.POST("/v1/profiles/:id/checkups", h.Create, withPrincipal(domain.Principal{ID: "7", Role: domain.RoleKader}))

	rec := doJSON(e, http.MethodPost, "/v1/profiles/64f1a2/checkups",
		`{"systolic":150,"diastolic":90,"weight_kg":52.5,"height_cm":155,"recorded_by":"somebody-else"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.input.RecordedBy != "7" {
		t.Fatalf("recorder must come from the principal, got %q", svc.input.RecordedBy)
	}
	if svc.input.ProfileID != "64f1a2" {
		t.Fatalf("profile id must come from the path, got %q", svc.input.ProfileID)
	}
}

func TestCheckupHandler_CreateValidation(t *testing.T) {
	cases := map[string]string{
		"missing systolic": `{"diastolic":90,"weight_kg":52.5,"height_cm":155}`,
		"zero weight":      `{"systolic":150,"diastolic":90,"weight_kg":0,"height_cm":155}`,
		"bad checked_at":   `{"checked_at":"yesterday","systolic":150,"diastolic":90,"weight_kg":52.5,"height_cm":155}`,
	}
	for name, body := range cases {
		svc := &stubCheckupService{checkup: &domain.Checkup{ID: "chk-1"}}
		e := newTestEcho()
		h := handler.NewCheckupHandler(svc)
		e.POST("/v1/profiles/:id/checkups", h.Create, withPrincipal(domain.Principal{ID: "7", Role: domain.RoleKader}))

		rec := doJSON(e, http.MethodPost, "/v1/profiles/64f1a2/checkups", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d: %s", name, rec.Code, rec.Body.String())
		}
	}
}

func TestCheckupHandler_CreateWithoutPrincipal(t *testing.T) {
	e := newTestEcho()
	h := handler.NewCheckupHandler(&stubCheckupService{})
	e.POST("/v1/profiles/:id/checkups", h.Create)

	rec := doJSON(e, http.MethodPost, "/v1/profiles/64f1a2/checkups",
		`{"systolic":150,"diastolic":90,"weight_kg":52.5,"height_cm":155}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckupHandler_ListDateFilter(t *testing.T) {
	svc := &stubCheckupService{list: &ports.ListCheckupsResult{
		Items: []*domain.Checkup{{ID: "chk-1", ProfileID: "64f1a2"}},
		Total: 1, Page: 1, Limit: 20, TotalPages: 1,
	}}
	e := newTestEcho()
	h := handler.NewCheckupHandler(svc)
	e.GET("/v1/profiles/:id/checkups", h.List)

	rec := doJSON(e, http.MethodGet, "/v1/profiles/64f1a2/checkups?from=2026-07-01&to=2026-07-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Items []*domain.Checkup `json:"items"`
		Total int64             `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Total != 1 {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/v1/profiles/64f1a2/checkups?from=July", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed date, got %d", rec.Code)
	}
}

func TestReportHandler_Monthly(t *testing.T) {
	e := newTestEcho()
	h := handler.NewReportHandler(&stubReportService{report: &ports.MonthlyReport{
		Year: 2026, Month: 7, CheckupCount: 12,
	}})
	e.GET("/v1/reports/monthly", h.Monthly)

	rec := doJSON(e, http.MethodGet, "/v1/reports/monthly?year=2026&month=7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report ports.MonthlyReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.CheckupCount != 12 {
		t.Fatalf("unexpected report: %s", rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/v1/reports/monthly?month=7", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a year, got %d", rec.Code)
	}
}

type stubReportService struct {
	report *ports.MonthlyReport
	err    error
}

func (s *stubReportService) MonthlyReport(context.Context, int, int) (*ports.MonthlyReport, error) {
	return s.report, s.err
}
