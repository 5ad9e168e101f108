package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staysmart/hospitality-platform/internal/api/metrics"
	"github.com/staysmart/hospitality-platform/internal/core/domain"
	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

// PropertyHandler handles property lifecycle and staff requests.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// Register handles POST /v1/properties — creates a pending property.
//
// @Summary      Register a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        body  body      registerPropertyRequest  true  "Property registration"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/properties [post]
func (h *PropertyHandler) Register(c echo.Context) error {
	var req registerPropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Register(c.Request().Context(), ports.RegisterPropertyInput{
		Slug:         req.Slug,
		Name:         req.Name,
		Address:      req.Address,
		Location:     req.Location,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Password:     req.Password,
		LicenceRef:   req.LicenceRef,
	})
	if err != nil {
		return err
	}

	metrics.PropertiesRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, successResponse{Success: true, ID: id})
}

// Search handles GET /v1/properties/search?location= — approved properties only.
//
// @Summary      Search approved properties by location
// @Tags         properties
// @Produce      json
// @Param        location  query     string  true  "Location substring"
// @Success      200       {array}   domain.PropertySummary
// @Router       /v1/properties/search [get]
func (h *PropertyHandler) Search(c echo.Context) error {
	items, err := h.service.Search(c.Request().Context(), c.QueryParam("location"))
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.PropertySummary{}
	}
	return c.JSON(http.StatusOK, items)
}

// ListPending handles GET /v1/admin/properties/pending.
//
// @Summary      List pending property registrations
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Property
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/properties/pending [get]
func (h *PropertyHandler) ListPending(c echo.Context) error {
	properties, err := h.service.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, properties)
}

// Approve handles POST /v1/admin/properties/approve. Idempotent.
//
// @Summary      Approve a pending property
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      approvePropertyRequest  true  "Owner email"
// @Success      200   {object}  successResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/properties/approve [post]
func (h *PropertyHandler) Approve(c echo.Context) error {
	var req approvePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Approve(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.PropertiesApprovedTotal.Inc()
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Reject handles DELETE /v1/admin/properties/:id — destructive, cascades.
//
// @Summary      Reject and delete a property
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/properties/{id} [delete]
func (h *PropertyHandler) Reject(c echo.Context) error {
	if err := h.service.Reject(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// AddStaff handles POST /v1/properties/:id/staff.
//
// @Summary      Create a staff account
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addStaffRequest  true  "Staff account"
// @Success      201   {object}  domain.StaffAccount
// @Failure      409   {object}  errorResponse
// @Router       /v1/properties/{id}/staff [post]
func (h *PropertyHandler) AddStaff(c echo.Context) error {
	var req addStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.AddStaff(c.Request().Context(), ports.AddStaffInput{
		PropertyID: c.Param("id"),
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, account)
}

// ListStaff handles GET /v1/properties/:id/staff.
//
// @Summary      List staff accounts
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.StaffAccount
// @Router       /v1/properties/{id}/staff [get]
func (h *PropertyHandler) ListStaff(c echo.Context) error {
	accounts, err := h.service.ListStaff(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}
