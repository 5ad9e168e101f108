package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

// AllocationService is the transactional core of the platform. It is the only
// creator of confirmed bookings and, through the inventory repository, the
// only writer of available_capacity.
type AllocationService struct {
	inventory ports.InventoryRepository
	staff     ports.StaffRepository
	logger    zerolog.Logger
}

func NewAllocationService(inventory ports.InventoryRepository, staff ports.StaffRepository, logger zerolog.Logger) *AllocationService {
	return &AllocationService{inventory: inventory, staff: staff, logger: logger}
}

// AddRoomType creates a room type with available capacity equal to total.
func (s *AllocationService) AddRoomType(ctx context.Context, input ports.AddRoomTypeInput) (*domain.RoomType, error) {
	if input.Label == "" || input.TotalCapacity < 0 || input.Price < 0 {
		return nil, domain.ErrInvalidInput
	}

	roomType := &domain.RoomType{
		PropertyID:        input.PropertyID,
		Label:             input.Label,
		Price:             input.Price,
		TotalCapacity:     input.TotalCapacity,
		AvailableCapacity: input.TotalCapacity,
	}

	id, err := s.inventory.CreateRoomType(ctx, roomType)
	if err != nil {
		s.logger.Error().Err(err).Str("property_id", input.PropertyID).Msg("failed to create room type")
		return nil, err
	}
	roomType.ID = id

	s.logger.Info().
		Str("property_id", input.PropertyID).
		Str("label", input.Label).
		Int("total_capacity", input.TotalCapacity).
		Msg("room type created")
	return roomType, nil
}

// GetAvailability lists room types with their remaining capacity. A property
// with no room types is a not-found condition, matching the HTTP surface.
func (s *AllocationService) GetAvailability(ctx context.Context, propertyID string) ([]ports.AvailabilityItem, error) {
	roomTypes, err := s.inventory.ListRoomTypes(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if len(roomTypes) == 0 {
		return nil, domain.ErrNoRoomTypes
	}

	items := make([]ports.AvailabilityItem, 0, len(roomTypes))
	for _, rt := range roomTypes {
		items = append(items, ports.AvailabilityItem{
			RoomTypeID: rt.ID,
			Label:      rt.Label,
			Price:      rt.Price,
			Available:  rt.AvailableCapacity,
		})
	}
	return items, nil
}

// Book atomically allocates one unit of capacity and records the booking.
// No availability is an expected business outcome (ErrNoAvailability), not a
// fault. Ties between room types sharing a label break on lowest id.
func (s *AllocationService) Book(ctx context.Context, input ports.BookInput) (*ports.BookResult, error) {
	if input.RoomTypeLabel == "" || input.GuestName == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.CheckIn.IsZero() || input.CheckOut.IsZero() || !input.CheckIn.Before(input.CheckOut) {
		return nil, domain.ErrInvalidInput
	}

	booking := &domain.Booking{
		Reference:    generateBookingReference(),
		PropertyID:   input.PropertyID,
		GuestName:    input.GuestName,
		GuestContact: input.GuestContact,
		CheckIn:      input.CheckIn.UTC(),
		CheckOut:     input.CheckOut.UTC(),
		Status:       domain.BookingConfirmed,
		CreatedAt:    time.Now().UTC(),
	}

	roomType, err := s.inventory.AllocateBooking(ctx, input.RoomTypeLabel, booking)
	if err != nil {
		if err == domain.ErrNoAvailability {
			s.logger.Info().
				Str("property_id", input.PropertyID).
				Str("label", input.RoomTypeLabel).
				Msg("booking rejected: no availability")
			return nil, err
		}
		s.logger.Error().Err(err).Str("property_id", input.PropertyID).Msg("booking allocation failed")
		return nil, err
	}

	s.logger.Info().
		Str("property_id", input.PropertyID).
		Str("reference", booking.Reference).
		Str("room_type", roomType.Label).
		Msg("booking confirmed")

	return &ports.BookResult{
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		RoomTypeLabel: roomType.Label,
		Price:         roomType.Price,
		CheckIn:       booking.CheckIn,
		CheckOut:      booking.CheckOut,
	}, nil
}

// CancelBooking flips a confirmed booking to cancelled and symmetrically
// re-increments capacity under the same transaction discipline as Book.
func (s *AllocationService) CancelBooking(ctx context.Context, propertyID, bookingID string) error {
	if err := s.inventory.CancelBooking(ctx, propertyID, bookingID); err != nil {
		if err == domain.ErrBookingNotFound {
			return err
		}
		s.logger.Error().Err(err).Str("booking_id", bookingID).Msg("booking cancellation failed")
		return err
	}

	s.logger.Info().Str("property_id", propertyID).Str("booking_id", bookingID).Msg("booking cancelled")
	return nil
}

func (s *AllocationService) ListBookings(ctx context.Context, propertyID string) ([]ports.BookingView, error) {
	return s.inventory.ListBookings(ctx, propertyID)
}

// DashboardStats joins inventory projections with the staff headcount.
func (s *AllocationService) DashboardStats(ctx context.Context, propertyID string) (*ports.DashboardStats, error) {
	stats, err := s.inventory.Stats(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	staffCount, err := s.staff.CountByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	return &ports.DashboardStats{
		BookingsCount:      stats.BookingsCount,
		TotalRevenue:       stats.TotalRevenue,
		AvailableInventory: stats.AvailableInventory,
		RoomTypesCount:     stats.RoomTypesCount,
		StaffCount:         staffCount,
	}, nil
}

// generateBookingReference returns a booking reference in the format BK-XXXXXXXX.
func generateBookingReference() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("BK-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("BK-%08X", b)
}
