package domain

import (
	"errors"
	"time"
)

var ErrStaffExists = errors.New("staff account already exists")
var ErrStaffNotFound = errors.New("staff account not found")

// StaffAccount belongs to exactly one property. Email is unique per property.
type StaffAccount struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	PropertyID   string    `json:"property_id" bson:"property_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
