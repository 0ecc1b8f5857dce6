package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/posyandu/lansia-health/internal/api/metrics"
	"github.com/posyandu/lansia-health/internal/core/domain"
	"github.com/posyandu/lansia-health/internal/core/ports"
)

// CheckupHandler handles HTTP requests for checkup records.
type CheckupHandler struct {
	service ports.CheckupService
}

func NewCheckupHandler(service ports.CheckupService) *CheckupHandler {
	return &CheckupHandler{service: service}
}

type createCheckupRequest struct {
	CheckedAt   string   `json:"checked_at"`
	Systolic    int      `json:"systolic" validate:"required,gt=0"`
	Diastolic   int      `json:"diastolic" validate:"required,gt=0"`
	WeightKg    float64  `json:"weight_kg" validate:"required,gt=0"`
	HeightCm    float64  `json:"height_cm" validate:"required,gt=0"`
	BloodSugar  *float64 `json:"blood_sugar"`
	Cholesterol *float64 `json:"cholesterol"`
	UricAcid    *float64 `json:"uric_acid"`
	Notes       string   `json:"notes"`
}

type listCheckupsResponse struct {
	Items      []*domain.Checkup `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// Create handles POST /v1/profiles/:id/checkups. The recording kader is
// taken from the authenticated principal, never from the payload.
//
// @Summary      Record a checkup
// @Tags         checkups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Profile id"
// @Param        body  body      createCheckupRequest  true  "Measurements"
// @Success      201   {object}  domain.Checkup
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /v1/profiles/{id}/checkups [post]
func (h *CheckupHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createCheckupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var checkedAt time.Time
	if req.CheckedAt != "" {
		checkedAt, err = time.Parse(time.RFC3339, req.CheckedAt)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "checked_at must be RFC3339")
		}
	}

	checkup, err := h.service.CreateCheckup(c.Request().Context(), ports.CreateCheckupInput{
		ProfileID:   c.Param("id"),
		CheckedAt:   checkedAt,
		Systolic:    req.Systolic,
		Diastolic:   req.Diastolic,
		WeightKg:    req.WeightKg,
		HeightCm:    req.HeightCm,
		BloodSugar:  req.BloodSugar,
		Cholesterol: req.Cholesterol,
		UricAcid:    req.UricAcid,
		Notes:       req.Notes,
		RecordedBy:  principal.ID,
	})
	if err != nil {
		return err
	}

	metrics.CheckupsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, checkup)
}

// List handles GET /v1/profiles/:id/checkups.
func (h *CheckupHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := ports.ListCheckupsFilter{
		ProfileID: c.Param("id"),
		Page:      page,
		Limit:     limit,
	}
	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		filter.DateFrom = from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		filter.DateTo = to
	}

	result, err := h.service.ListCheckups(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listCheckupsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /v1/checkups/:id.
func (h *CheckupHandler) Get(c echo.Context) error {
	checkup, err := h.service.GetCheckup(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkup)
}
