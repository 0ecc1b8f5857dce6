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

// ProfileHandler handles HTTP requests for elder profiles and their QR
// identities.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// --- Request / Response types ---

type createProfileRequest struct {
	NIK       string `json:"nik"`
	FullName  string `json:"full_name" validate:"required,min=2"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Gender    string `json:"gender" validate:"required,oneof=male female"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type profileQRResponse struct {
	ProfileID string `json:"profile_id"`
	Payload   string `json:"payload"`
	QRCodeID  string `json:"qr_code_id"`
}

type scanRequest struct {
	Payload string `json:"payload" validate:"required"`
}

type scanResponse struct {
	Format  string          `json:"format"`
	Profile *domain.Profile `json:"profile"`
}

type listProfilesResponse struct {
	Items      []*domain.Profile `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// Create handles POST /v1/profiles.
//
// @Summary      Enrol a new elder profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProfileRequest  true  "Profile details"
// @Success      201   {object}  domain.Profile
// @Failure      400   {object}  map[string]any
// @Router       /v1/profiles [post]
func (h *ProfileHandler) Create(c echo.Context) error {
	var req createProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
	}

	profile, err := h.service.CreateProfile(c.Request().Context(), ports.CreateProfileInput{
		NIK:       req.NIK,
		FullName:  req.FullName,
		BirthDate: birthDate,
		Gender:    req.Gender,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	metrics.ProfilesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, profile)
}

// Get handles GET /v1/profiles/:id.
func (h *ProfileHandler) Get(c echo.Context) error {
	profile, err := h.service.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update handles PUT /v1/profiles/:id.
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.service.UpdateProfile(c.Request().Context(), c.Param("id"), ports.UpdateProfileInput{
		FullName: req.FullName,
		Address:  req.Address,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Delete handles DELETE /v1/profiles/:id. Admin only; soft delete.
func (h *ProfileHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProfile(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/profiles with pagination and name/NIK search.
//
// @Summary      List profiles
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Partial match on name or NIK"
// @Param        page    query     int     false  "1-based page"
// @Param        limit   query     int     false  "Rows per page (max 100)"
// @Success      200     {object}  listProfilesResponse
// @Router       /v1/profiles [get]
func (h *ProfileHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := ports.ListProfilesFilter{
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.QueryParam("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	result, err := h.service.ListProfiles(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listProfilesResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// QR handles GET /v1/profiles/:id/qr — the printable identity payload.
func (h *ProfileHandler) QR(c echo.Context) error {
	qr, err := h.service.ProfileQR(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileQRResponse{
		ProfileID: qr.ProfileID,
		Payload:   qr.Payload,
		QRCodeID:  qr.QRCodeID,
	})
}

// Scan handles POST /v1/qr/scan — resolves a scanned payload to a profile.
// Accepts both the structured JSON payload and the legacy "QR<digits>" form.
//
// @Summary      Resolve a scanned QR payload
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      scanRequest  true  "Scanned payload"
// @Success      200   {object}  scanResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /v1/qr/scan [post]
func (h *ProfileHandler) Scan(c echo.Context) error {
	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, identity, err := h.service.ResolveScan(c.Request().Context(), req.Payload)
	if identity != nil {
		metrics.QRDecodesTotal.WithLabelValues(string(identity.Kind)).Inc()
	} else {
		metrics.QRDecodesTotal.WithLabelValues(string(domain.IdentityInvalid)).Inc()
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, scanResponse{
		Format:  string(identity.Kind),
		Profile: profile,
	})
}
