package ports

import (
	"context"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
)

// StaffRepository defines persistence for property staff accounts.
type StaffRepository interface {
	Create(ctx context.Context, s *domain.StaffAccount) (*domain.StaffAccount, error)
	// FindByEmail resolves a staff account by email across all properties
	// (used by the authentication gate).
	FindByEmail(ctx context.Context, email string) (*domain.StaffAccount, error)
	ListByProperty(ctx context.Context, propertyID string) ([]domain.StaffAccount, error)
	CountByProperty(ctx context.Context, propertyID string) (int64, error)
}
