package ports

import (
	"context"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
)

// BookingView is a booking joined with its room-type label.
type BookingView struct {
	Booking       domain.Booking `json:"booking"`
	RoomTypeLabel string         `json:"room_type_label"`
}

// InventoryStats are the read-only projections for the owner dashboard.
type InventoryStats struct {
	BookingsCount      int64   `json:"bookings_count"`
	TotalRevenue       float64 `json:"total_revenue"`
	AvailableInventory int64   `json:"available_inventory"`
	RoomTypesCount     int64   `json:"room_types_count"`
}

// InventoryRepository defines persistence for room types and bookings.
//
// AllocateBooking and CancelBooking are the only writers of
// available_capacity; both must be atomic with their booking write so that a
// failure partway leaves capacity and the ledger consistent.
type InventoryRepository interface {
	CreateRoomType(ctx context.Context, rt *domain.RoomType) (string, error)
	// ListRoomTypes returns the property's room types ordered by id
	// ascending (the deterministic allocation tie-break order).
	ListRoomTypes(ctx context.Context, propertyID string) ([]domain.RoomType, error)
	// AllocateBooking atomically decrements available_capacity on the first
	// (lowest id) room type matching label with available_capacity > 0 and
	// inserts the booking, both in one transaction. Returns the allocated
	// room type, or domain.ErrNoAvailability when no candidate matches.
	AllocateBooking(ctx context.Context, label string, b *domain.Booking) (*domain.RoomType, error)
	// CancelBooking flips a confirmed booking to cancelled and re-increments
	// the room type's available_capacity in the same transaction.
	CancelBooking(ctx context.Context, propertyID, bookingID string) error
	// ListBookings returns bookings joined with room-type labels, ordered by
	// check-in date ascending.
	ListBookings(ctx context.Context, propertyID string) ([]BookingView, error)
	Stats(ctx context.Context, propertyID string) (*InventoryStats, error)
}
