package handler

type registerPropertyRequest struct {
	Slug         string `json:"slug"          validate:"required,min=3,slug"`
	Name         string `json:"name"          validate:"required"`
	Address      string `json:"address"       validate:"required"`
	Location     string `json:"location"      validate:"required"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	ContactPhone string `json:"contact_phone"`
	Password     string `json:"password"      validate:"required,min=8"`
	LicenceRef   string `json:"licence_ref"`
}

type approvePropertyRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type addStaffRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type successResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}
