package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/posyandu/lansia-health/internal/core/ports"
)

// ReportHandler handles aggregate statistics endpoints. Admin only.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Monthly handles GET /v1/reports/monthly?year=&month=.
//
// @Summary      Monthly checkup report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        year   query     int  true  "Calendar year"
// @Param        month  query     int  true  "Calendar month (1-12)"
// @Success      200    {object}  ports.MonthlyReport
// @Failure      400    {object}  map[string]any
// @Router       /v1/reports/monthly [get]
func (h *ReportHandler) Monthly(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "year is required")
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "month is required")
	}

	report, err := h.service.MonthlyReport(c.Request().Context(), year, month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
