package ports

import (
	"context"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
)

// RegisterPropertyInput carries all data needed to register a property.
type RegisterPropertyInput struct {
	Slug         string
	Name         string
	Address      string
	Location     string
	Description  string
	ContactEmail string
	ContactPhone string
	Password     string
	LicenceRef   string
}

// AddStaffInput carries the data for creating a staff account.
type AddStaffInput struct {
	PropertyID string
	Name       string
	Email      string
	Password   string
}

// PropertyService defines the property lifecycle use cases: registration,
// the pending -> approved transition, reject-delete, and search.
type PropertyService interface {
	Register(ctx context.Context, input RegisterPropertyInput) (string, error)
	// Approve transitions pending -> approved and enqueues an approval
	// notification. It is idempotent: approving an already-approved
	// property succeeds without a state change.
	Approve(ctx context.Context, email string) error
	Reject(ctx context.Context, propertyID string) error
	ListPending(ctx context.Context) ([]domain.Property, error)
	Search(ctx context.Context, location string) ([]domain.PropertySummary, error)

	AddStaff(ctx context.Context, input AddStaffInput) (*domain.StaffAccount, error)
	ListStaff(ctx context.Context, propertyID string) ([]domain.StaffAccount, error)
}
