package ports

import (
	"context"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
)

// AuthService resolves a credential pair to a role and property scope.
//
// Resolution order is fixed: platform admin, then property owner, then staff.
// The same email may exist in more than one class; the priority order is the
// documented tie-break.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (string, *domain.Identity, error)
}
