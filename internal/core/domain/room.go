package domain

import (
	"errors"
	"time"
)

// BookingStatus is the lifecycle state of a booking. Bookings are never
// mutated after creation except for the confirmed -> cancelled transition.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

var ErrNoRoomTypes = errors.New("property has no room types")
var ErrNoAvailability = errors.New("no availability for requested room type")
var ErrBookingNotFound = errors.New("booking not found")

// RoomType is a category of rooms within a property sharing a price and a
// capacity pool. The invariant 0 <= AvailableCapacity <= TotalCapacity must
// hold at all times; the allocation repository is its only writer.
type RoomType struct {
	ID                string  `json:"id" bson:"_id,omitempty"`
	PropertyID        string  `json:"property_id" bson:"property_id"`
	Label             string  `json:"label" bson:"label"`
	Price             float64 `json:"price" bson:"price"`
	TotalCapacity     int     `json:"total_capacity" bson:"total_capacity"`
	AvailableCapacity int     `json:"available_capacity" bson:"available_capacity"`
}

// Booking is one allocated unit of a room type's capacity.
type Booking struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	Reference    string        `json:"reference" bson:"reference"`
	PropertyID   string        `json:"property_id" bson:"property_id"`
	RoomTypeID   string        `json:"room_type_id" bson:"room_type_id"`
	GuestName    string        `json:"guest_name" bson:"guest_name"`
	GuestContact string        `json:"guest_contact" bson:"guest_contact"`
	CheckIn      time.Time     `json:"check_in" bson:"check_in"`
	CheckOut     time.Time     `json:"check_out" bson:"check_out"`
	Status       BookingStatus `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}
