package handler

import "time"

type addRoomTypeRequest struct {
	Label         string  `json:"label"          validate:"required"`
	Price         float64 `json:"price"          validate:"gte=0"`
	TotalCapacity int     `json:"total_capacity" validate:"gte=0"`
}

type bookRequest struct {
	RoomType     string    `json:"room_type"     validate:"required"`
	GuestName    string    `json:"guest_name"    validate:"required"`
	GuestContact string    `json:"guest_contact"`
	CheckIn      time.Time `json:"check_in"      validate:"required"`
	CheckOut     time.Time `json:"check_out"     validate:"required"`
}

type bookResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id"`
	Reference string `json:"reference"`
	RoomType  string `json:"room_type"`
}

type chatRequest struct {
	PropertyID   string `json:"property_id" validate:"required"`
	Message      string `json:"message"     validate:"required"`
	GuestName    string `json:"guest_name"`
	GuestContact string `json:"guest_contact"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}
