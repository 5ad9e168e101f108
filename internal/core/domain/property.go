package domain

import (
	"errors"
	"time"
)

// LifecycleState represents the approval status of a property.
type LifecycleState string

const (
	StatePending  LifecycleState = "pending"
	StateApproved LifecycleState = "approved"
)

var ErrPropertyNotFound = errors.New("property not found")
var ErrSlugTaken = errors.New("slug already taken")
var ErrInvalidInput = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")

// Property is a hotel/listing entity subject to the approval workflow.
// Only approved properties are visible to search and bookable.
type Property struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	Slug         string         `json:"slug" bson:"slug"`
	Name         string         `json:"name" bson:"name"`
	Address      string         `json:"address" bson:"address"`
	Location     string         `json:"location" bson:"location"`
	Description  string         `json:"description,omitempty" bson:"description,omitempty"`
	ContactEmail string         `json:"contact_email" bson:"contact_email"`
	ContactPhone string         `json:"contact_phone,omitempty" bson:"contact_phone,omitempty"`
	PasswordHash string         `json:"-" bson:"password_hash"`
	LicenceRef   string         `json:"licence_ref,omitempty" bson:"licence_ref,omitempty"`
	State        LifecycleState `json:"state" bson:"state"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
}

// PropertySummary is the public view returned by search (no credential, no licence).
type PropertySummary struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Location string `json:"location"`
}

// Summary strips the property down to its public search view.
func (p *Property) Summary() PropertySummary {
	return PropertySummary{
		ID:       p.ID,
		Slug:     p.Slug,
		Name:     p.Name,
		Address:  p.Address,
		Location: p.Location,
	}
}
