package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub inventory repository
// ---------------------------------------------------------------------------

// stubInventoryRepo reproduces the conditional-decrement semantics of the
// real Mongo repository: a booking only lands when a matching room type still
// has capacity, and both writes happen under one lock so a failure partway
// restores capacity.
type stubInventoryRepo struct {
	mu        sync.Mutex
	roomTypes []*domain.RoomType
	bookings  []*domain.Booking
	nextID    int
	insertErr error // if set, the booking insert inside AllocateBooking fails
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{}
}

func (r *stubInventoryRepo) CreateRoomType(_ context.Context, rt *domain.RoomType) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *rt
	clone.ID = fmt.Sprintf("rt_%03d", r.nextID)
	r.roomTypes = append(r.roomTypes, &clone)
	return clone.ID, nil
}

func (r *stubInventoryRepo) ListRoomTypes(_ context.Context, propertyID string) ([]domain.RoomType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RoomType
	for _, rt := range r.roomTypes {
		if rt.PropertyID == propertyID {
			out = append(out, *rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AllocateBooking mirrors the real repo's transaction: the first (lowest id)
// matching room type with capacity left is decremented, then the booking is
// inserted; an insert failure rolls the decrement back.
func (r *stubInventoryRepo) AllocateBooking(_ context.Context, label string, b *domain.Booking) (*domain.RoomType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var candidate *domain.RoomType
	for _, rt := range r.roomTypes {
		if rt.PropertyID != b.PropertyID || rt.Label != label || rt.AvailableCapacity <= 0 {
			continue
		}
		if candidate == nil || rt.ID < candidate.ID {
			candidate = rt
		}
	}
	if candidate == nil {
		return nil, domain.ErrNoAvailability
	}

	candidate.AvailableCapacity--
	if r.insertErr != nil {
		candidate.AvailableCapacity++
		return nil, r.insertErr
	}

	r.nextID++
	b.ID = fmt.Sprintf("bk_%03d", r.nextID)
	b.RoomTypeID = candidate.ID
	clone := *b
	r.bookings = append(r.bookings, &clone)

	result := *candidate
	return &result, nil
}

func (r *stubInventoryRepo) CancelBooking(_ context.Context, propertyID, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID != bookingID || b.PropertyID != propertyID || b.Status != domain.BookingConfirmed {
			continue
		}
		for _, rt := range r.roomTypes {
			if rt.ID == b.RoomTypeID && rt.AvailableCapacity < rt.TotalCapacity {
				b.Status = domain.BookingCancelled
				rt.AvailableCapacity++
				return nil
			}
		}
		return errors.New("capacity already at total")
	}
	return domain.ErrBookingNotFound
}

func (r *stubInventoryRepo) ListBookings(_ context.Context, propertyID string) ([]ports.BookingView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	labels := make(map[string]string, len(r.roomTypes))
	for _, rt := range r.roomTypes {
		labels[rt.ID] = rt.Label
	}

	var out []ports.BookingView
	for _, b := range r.bookings {
		if b.PropertyID == propertyID {
			out = append(out, ports.BookingView{Booking: *b, RoomTypeLabel: labels[b.RoomTypeID]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Booking.CheckIn.Before(out[j].Booking.CheckIn) })
	return out, nil
}

func (r *stubInventoryRepo) Stats(_ context.Context, propertyID string) (*ports.InventoryStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &ports.InventoryStats{}
	prices := make(map[string]float64, len(r.roomTypes))
	for _, rt := range r.roomTypes {
		if rt.PropertyID != propertyID {
			continue
		}
		stats.RoomTypesCount++
		stats.AvailableInventory += int64(rt.AvailableCapacity)
		prices[rt.ID] = rt.Price
	}
	for _, b := range r.bookings {
		if b.PropertyID == propertyID && b.Status == domain.BookingConfirmed {
			stats.BookingsCount++
			stats.TotalRevenue += prices[b.RoomTypeID]
		}
	}
	return stats, nil
}

// ---------------------------------------------------------------------------
// Stub staff repository (only CountByProperty matters here)
// ---------------------------------------------------------------------------

type stubStaffCounter struct {
	count int64
}

func (s *stubStaffCounter) Create(_ context.Context, a *domain.StaffAccount) (*domain.StaffAccount, error) {
	return a, nil
}

func (s *stubStaffCounter) FindByEmail(_ context.Context, _ string) (*domain.StaffAccount, error) {
	return nil, domain.ErrStaffNotFound
}

func (s *stubStaffCounter) ListByProperty(_ context.Context, _ string) ([]domain.StaffAccount, error) {
	return nil, nil
}

func (s *stubStaffCounter) CountByProperty(_ context.Context, _ string) (int64, error) {
	return s.count, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func bookInput(propertyID, label string) ports.BookInput {
	checkIn := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	return ports.BookInput{
		PropertyID:    propertyID,
		RoomTypeLabel: label,
		GuestName:     "Ana",
		GuestContact:  "ana@example.com",
		CheckIn:       checkIn,
		CheckOut:      checkIn.AddDate(0, 0, 2),
	}
}

func seedRoomType(t *testing.T, svc *AllocationService, propertyID, label string, total int) *domain.RoomType {
	t.Helper()
	rt, err := svc.AddRoomType(context.Background(), ports.AddRoomTypeInput{
		PropertyID:    propertyID,
		Label:         label,
		Price:         120,
		TotalCapacity: total,
	})
	if err != nil {
		t.Fatalf("seed room type: %v", err)
	}
	return rt
}

// ---------------------------------------------------------------------------
// AddRoomType tests
// ---------------------------------------------------------------------------

func TestAllocationService_AddRoomType_AvailableStartsAtTotal(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)

	rt := seedRoomType(t, svc, "prop_1", "Deluxe", 5)

	if rt.AvailableCapacity != 5 {
		t.Errorf("expected available=5, got %d", rt.AvailableCapacity)
	}
	if rt.ID == "" {
		t.Error("expected assigned id")
	}
}

func TestAllocationService_AddRoomType_Validation(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)

	cases := []ports.AddRoomTypeInput{
		{PropertyID: "prop_1", Label: "", TotalCapacity: 3, Price: 10},
		{PropertyID: "prop_1", Label: "Suite", TotalCapacity: -1, Price: 10},
		{PropertyID: "prop_1", Label: "Suite", TotalCapacity: 3, Price: -0.01},
	}
	for _, input := range cases {
		if _, err := svc.AddRoomType(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("input %+v: expected ErrInvalidInput, got %v", input, err)
		}
	}
}

func TestAllocationService_AddRoomType_ZeroCapacityAllowed(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)

	rt := seedRoomType(t, svc, "prop_1", "Penthouse", 0)
	if rt.AvailableCapacity != 0 {
		t.Errorf("expected available=0, got %d", rt.AvailableCapacity)
	}

	// A zero-capacity room type is visible but never bookable.
	_, err := svc.Book(context.Background(), bookInput("prop_1", "Penthouse"))
	if !errors.Is(err, domain.ErrNoAvailability) {
		t.Errorf("expected ErrNoAvailability, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// GetAvailability tests
// ---------------------------------------------------------------------------

func TestAllocationService_GetAvailability_NoRoomTypes(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)

	_, err := svc.GetAvailability(context.Background(), "prop_empty")
	if !errors.Is(err, domain.ErrNoRoomTypes) {
		t.Errorf("expected ErrNoRoomTypes, got %v", err)
	}
}

func TestAllocationService_GetAvailability_ReflectsBookings(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)
	seedRoomType(t, svc, "prop_1", "Deluxe", 2)

	if _, err := svc.Book(context.Background(), bookInput("prop_1", "Deluxe")); err != nil {
		t.Fatalf("book failed: %v", err)
	}

	items, err := svc.GetAvailability(context.Background(), "prop_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Available != 1 {
		t.Errorf("expected available=1 after one booking, got %d", items[0].Available)
	}
}

// ---------------------------------------------------------------------------
// Book tests
// ---------------------------------------------------------------------------

func TestAllocationService_Book_Success(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)
	seedRoomType(t, svc, "prop_1", "Deluxe", 3)

	result, err := svc.Book(context.Background(), bookInput("prop_1", "Deluxe"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(result.Reference, "BK-") || len(result.Reference) != 11 {
		t.Errorf("reference format wrong: %s", result.Reference)
	}
	if result.BookingID == "" {
		t.Error("expected booking id to be set")
	}
	if result.RoomTypeLabel != "Deluxe" {
		t.Errorf("expected label Deluxe, got %s", result.RoomTypeLabel)
	}

	stored := repo.bookings[0]
	if stored.Status != domain.BookingConfirmed {
		t.Errorf("expected confirmed status, got %s", stored.Status)
	}
	if stored.RoomTypeID == "" {
		t.Error("expected booking linked to a room type")
	}
}

func TestAllocationService_Book_Validation(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)
	seedRoomType(t, svc, "prop_1", "Deluxe", 3)

	base := bookInput("prop_1", "Deluxe")

	noLabel := base
	noLabel.RoomTypeLabel = ""

	noGuest := base
	noGuest.GuestName = ""

	noDates := base
	noDates.CheckIn = time.Time{}

	inverted := base
	inverted.CheckIn, inverted.CheckOut = inverted.CheckOut, inverted.CheckIn

	sameDay := base
	sameDay.CheckOut = sameDay.CheckIn

	for _, input := range []ports.BookInput{noLabel, noGuest, noDates, inverted, sameDay} {
		if _, err := svc.Book(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("input %+v: expected ErrInvalidInput, got %v", input, err)
		}
	}

	if len(repo.bookings) != 0 {
		t.Errorf("invalid inputs must not create bookings, got %d", len(repo.bookings))
	}
}

func TestAllocationService_Book_UnknownLabel(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)
	seedRoomType(t, svc, "prop_1", "Deluxe", 3)

	_, err := svc.Book(context.Background(), bookInput("prop_1", "Presidential"))
	if !errors.Is(err, domain.ErrNoAvailability) {
		t.Errorf("expected ErrNoAvailability for unknown label, got %v", err)
	}
}

func TestAllocationService_Book_ExhaustsCapacityExactly(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)
	seedRoomType(t, svc, "prop_1", "Deluxe", 2)

	for i := 0; i < 2; i++ {
		if _, err := svc.Book(context.Background(), bookInput("prop_1", "Deluxe")); err != nil {
			t.Fatalf("booking %d failed: %v", i+1, err)
		}
	}

	_, err := svc.Book(context.Background(), bookInput("prop_1", "Deluxe"))
	if !errors.Is(err, domain.ErrNoAvailability) {
		t.Errorf("third booking must fail with ErrNoAvailability, got %v", err)
	}

	if got := repo.roomTypes[0].AvailableCapacity; got != 0 {
		t.Errorf("expected available=0, got %d", got)
	}
	if len(repo.bookings) != 2 {
		t.Errorf("expected exactly 2 bookings, got %d", len(repo.bookings))
	}
}

// The no-overbooking guarantee: many concurrent requests against a single
// unit of capacity must yield exactly one confirmed booking.
func TestAllocationService_Book_ConcurrentSingleUnit(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)
	seedRoomType(t, svc, "prop_1", "Suite", 1)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(context.Background(), bookInput("prop_1", "Suite"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrNoAvailability):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if succeeded != 1 {
		t.Errorf("expected exactly 1 success, got %d", succeeded)
	}
	if rejected != attempts-1 {
		t.Errorf("expected %d rejections, got %d", attempts-1, rejected)
	}
	if got := repo.roomTypes[0].AvailableCapacity; got != 0 {
		t.Errorf("expected available=0, got %d", got)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("expected 1 stored booking, got %d", len(repo.bookings))
	}
}

func TestAllocationService_Book_InsertFailureRestoresCapacity(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)
	seedRoomType(t, svc, "prop_1", "Deluxe", 1)

	repo.insertErr = errors.New("write conflict")
	if _, err := svc.Book(context.Background(), bookInput("prop_1", "Deluxe")); err == nil {
		t.Fatal("expected error when booking insert fails")
	}

	// The failed attempt must not consume capacity.
	repo.insertErr = nil
	if _, err := svc.Book(context.Background(), bookInput("prop_1", "Deluxe")); err != nil {
		t.Errorf("capacity was not restored after failed insert: %v", err)
	}
}

func TestAllocationService_Book_TieBreaksOnLowestID(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)

	// Two pools sharing a label; the one created first has the lower id.
	first := seedRoomType(t, svc, "prop_1", "Deluxe", 1)
	seedRoomType(t, svc, "prop_1", "Deluxe", 1)

	result, err := svc.Book(context.Background(), bookInput("prop_1", "Deluxe"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.bookings[0].RoomTypeID != first.ID {
		t.Errorf("expected allocation from room type %s, got %s", first.ID, repo.bookings[0].RoomTypeID)
	}
	if result.RoomTypeLabel != "Deluxe" {
		t.Errorf("unexpected label %s", result.RoomTypeLabel)
	}
}

func TestAllocationService_Book_ScopedToProperty(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)
	seedRoomType(t, svc, "prop_1", "Deluxe", 1)

	_, err := svc.Book(context.Background(), bookInput("prop_2", "Deluxe"))
	if !errors.Is(err, domain.ErrNoAvailability) {
		t.Errorf("capacity must not leak across properties, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// CancelBooking tests
// ---------------------------------------------------------------------------

func TestAllocationService_Cancel_RestoresCapacity(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)
	seedRoomType(t, svc, "prop_1", "Suite", 1)

	result, err := svc.Book(context.Background(), bookInput("prop_1", "Suite"))
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	if err := svc.CancelBooking(context.Background(), "prop_1", result.BookingID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if got := repo.roomTypes[0].AvailableCapacity; got != 1 {
		t.Errorf("expected available=1 after cancellation, got %d", got)
	}
	if repo.bookings[0].Status != domain.BookingCancelled {
		t.Errorf("expected cancelled status, got %s", repo.bookings[0].Status)
	}

	// The freed unit is bookable again.
	if _, err := svc.Book(context.Background(), bookInput("prop_1", "Suite")); err != nil {
		t.Errorf("rebooking freed capacity failed: %v", err)
	}
}

func TestAllocationService_Cancel_Idempotence(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)
	seedRoomType(t, svc, "prop_1", "Suite", 1)

	result, _ := svc.Book(context.Background(), bookInput("prop_1", "Suite"))

	if err := svc.CancelBooking(context.Background(), "prop_1", result.BookingID); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}

	// A second cancel finds no confirmed booking; capacity stays at total.
	err := svc.CancelBooking(context.Background(), "prop_1", result.BookingID)
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound on double cancel, got %v", err)
	}
	if got := repo.roomTypes[0].AvailableCapacity; got != 1 {
		t.Errorf("double cancel must not exceed total: available=%d", got)
	}
}

func TestAllocationService_Cancel_UnknownBooking(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewAllocationService(repo, &stubStaffCounter{}, discardLogger)
	seedRoomType(t, svc, "prop_1", "Suite", 1)

	err := svc.CancelBooking(context.Background(), "prop_1", "bk_missing")
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Dashboard tests
// ---------------------------------------------------------------------------

func TestAllocationService_DashboardStats(t *testing.T) {
	repo := newStubInventoryRepo()
	staff := &stubStaffCounter{count: 3}
	svc := NewAllocationService(repo, staff, discardLogger)
	seedRoomType(t, svc, "prop_1", "Deluxe", 4)
	seedRoomType(t, svc, "prop_1", "Suite", 2)

	for i := 0; i < 2; i++ {
		if _, err := svc.Book(context.Background(), bookInput("prop_1", "Deluxe")); err != nil {
			t.Fatalf("book failed: %v", err)
		}
	}

	stats, err := svc.DashboardStats(context.Background(), "prop_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.BookingsCount != 2 {
		t.Errorf("expected 2 bookings, got %d", stats.BookingsCount)
	}
	if stats.TotalRevenue != 240 {
		t.Errorf("expected revenue 240, got %.2f", stats.TotalRevenue)
	}
	if stats.AvailableInventory != 4 {
		t.Errorf("expected available inventory 4, got %d", stats.AvailableInventory)
	}
	if stats.RoomTypesCount != 2 {
		t.Errorf("expected 2 room types, got %d", stats.RoomTypesCount)
	}
	if stats.StaffCount != 3 {
		t.Errorf("expected staff count 3, got %d", stats.StaffCount)
	}
}
