package domain

import "errors"

const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
	RoleStaff = "staff"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrPendingApproval = errors.New("account pending approval")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// Identity is the resolved result of an authentication attempt. It is
// ephemeral: the property scope travels in the token, never in the store.
type Identity struct {
	Role         string `json:"role"`
	PropertyID   string `json:"property_id,omitempty"`
	Email        string `json:"email"`
	Name         string `json:"name,omitempty"`
	RedirectHint string `json:"redirect_hint"`
}
