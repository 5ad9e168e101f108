package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staysmart/hospitality-platform/internal/api/metrics"
	"github.com/staysmart/hospitality-platform/internal/core/domain"
	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

// InventoryHandler handles room-type, availability, booking and dashboard
// requests.
type InventoryHandler struct {
	service ports.AllocationService
}

func NewInventoryHandler(service ports.AllocationService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// AddRoomType handles POST /v1/properties/:id/room-types.
//
// @Summary      Create a room type
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addRoomTypeRequest  true  "Room type"
// @Success      201   {object}  domain.RoomType
// @Failure      400   {object}  errorResponse
// @Router       /v1/properties/{id}/room-types [post]
func (h *InventoryHandler) AddRoomType(c echo.Context) error {
	var req addRoomTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	roomType, err := h.service.AddRoomType(c.Request().Context(), ports.AddRoomTypeInput{
		PropertyID:    c.Param("id"),
		Label:         req.Label,
		Price:         req.Price,
		TotalCapacity: req.TotalCapacity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, roomType)
}

// GetAvailability handles GET /v1/properties/:id/availability.
//
// @Summary      List room types with remaining capacity
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   ports.AvailabilityItem
// @Failure      404  {object}  errorResponse
// @Router       /v1/properties/{id}/availability [get]
func (h *InventoryHandler) GetAvailability(c echo.Context) error {
	items, err := h.service.GetAvailability(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Book handles POST /v1/properties/:id/bookings — the atomic allocation.
// No availability is a 400 with a structured reason, not a server fault.
//
// @Summary      Book a room
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body      bookRequest  true  "Booking request"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/properties/{id}/bookings [post]
func (h *InventoryHandler) Book(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.BookingsRejectedTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Book(c.Request().Context(), ports.BookInput{
		PropertyID:    c.Param("id"),
		RoomTypeLabel: req.RoomType,
		GuestName:     req.GuestName,
		GuestContact:  req.GuestContact,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoAvailability):
			metrics.BookingsRejectedTotal.WithLabelValues("no_availability").Inc()
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.BookingsRejectedTotal.WithLabelValues("invalid_input").Inc()
		}
		return err
	}

	metrics.BookingsCreatedTotal.WithLabelValues("api").Inc()
	return c.JSON(http.StatusCreated, bookResponse{
		Success:   true,
		BookingID: result.BookingID,
		Reference: result.Reference,
		RoomType:  result.RoomTypeLabel,
	})
}

// CancelBooking handles DELETE /v1/properties/:id/bookings/:bookingID.
//
// @Summary      Cancel a confirmed booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/properties/{id}/bookings/{bookingID} [delete]
func (h *InventoryHandler) CancelBooking(c echo.Context) error {
	err := h.service.CancelBooking(c.Request().Context(), c.Param("id"), c.Param("bookingID"))
	if err != nil {
		return err
	}

	metrics.BookingsCancelledTotal.Inc()
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// ListBookings handles GET /v1/properties/:id/bookings.
//
// @Summary      List bookings with room-type labels
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.BookingView
// @Router       /v1/properties/{id}/bookings [get]
func (h *InventoryHandler) ListBookings(c echo.Context) error {
	views, err := h.service.ListBookings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if views == nil {
		views = []ports.BookingView{}
	}
	return c.JSON(http.StatusOK, views)
}

// Stats handles GET /v1/properties/:id/stats — the owner dashboard.
//
// @Summary      Dashboard statistics
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Router       /v1/properties/{id}/stats [get]
func (h *InventoryHandler) Stats(c echo.Context) error {
	stats, err := h.service.DashboardStats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
