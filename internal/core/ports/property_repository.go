package ports

import (
	"context"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
)

// PropertyRepository defines persistence operations for properties.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Property, error)
	// FindByEmail looks a property up by its owner contact email.
	FindByEmail(ctx context.Context, email string) (*domain.Property, error)
	// ListPending returns properties awaiting approval, newest first.
	ListPending(ctx context.Context) ([]domain.Property, error)
	// SearchApproved matches location case-insensitively as a substring,
	// restricted to approved properties.
	SearchApproved(ctx context.Context, location string) ([]domain.PropertySummary, error)
	SetState(ctx context.Context, id string, state domain.LifecycleState) error
	// Delete removes the property and cascades to its room types, bookings
	// and staff accounts. Irreversible.
	Delete(ctx context.Context, id string) error
}
