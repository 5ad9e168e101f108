package ports

import (
	"context"
	"time"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
)

// AddRoomTypeInput carries the data for creating a room type.
type AddRoomTypeInput struct {
	PropertyID    string
	Label         string
	Price         float64
	TotalCapacity int
}

// BookInput carries a booking request.
type BookInput struct {
	PropertyID    string
	RoomTypeLabel string
	GuestName     string
	GuestContact  string
	CheckIn       time.Time
	CheckOut      time.Time
}

// BookResult is returned after a successful allocation.
type BookResult struct {
	BookingID     string    `json:"booking_id"`
	Reference     string    `json:"reference"`
	RoomTypeLabel string    `json:"room_type_label"`
	Price         float64   `json:"price"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
}

// AvailabilityItem is one row of the availability listing.
type AvailabilityItem struct {
	RoomTypeID string  `json:"room_type_id"`
	Label      string  `json:"label"`
	Price      float64 `json:"price"`
	Available  int     `json:"available"`
}

// DashboardStats is the owner dashboard projection. StaffCount is joined in
// by the service; everything else is derived from inventory and the ledger.
type DashboardStats struct {
	BookingsCount      int64   `json:"bookings_count"`
	TotalRevenue       float64 `json:"total_revenue"`
	AvailableInventory int64   `json:"available_inventory"`
	RoomTypesCount     int64   `json:"room_types_count"`
	StaffCount         int64   `json:"staff_count"`
}

// AllocationService defines the inventory allocation use cases. Book is the
// correctness-critical operation: under concurrent requests for the last unit
// of a room type, at most one may succeed.
type AllocationService interface {
	AddRoomType(ctx context.Context, input AddRoomTypeInput) (*domain.RoomType, error)
	GetAvailability(ctx context.Context, propertyID string) ([]AvailabilityItem, error)
	Book(ctx context.Context, input BookInput) (*BookResult, error)
	CancelBooking(ctx context.Context, propertyID, bookingID string) error
	ListBookings(ctx context.Context, propertyID string) ([]BookingView, error)
	DashboardStats(ctx context.Context, propertyID string) (*DashboardStats, error)
}
