package models

import "errors"

// Accommodation is a bookable place to stay
type Accommodation struct {
	ID         int64   `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	Type       string  `json:"type" db:"type"`
	Rate       float64 `json:"rate" db:"rate"`
	Facilities *string `json:"facilities,omitempty" db:"facilities"`
	Discount   float64 `json:"discount" db:"discount"`
	LocationID int64   `json:"location_id" db:"location_id"`
	City       *string `json:"city,omitempty" db:"city"`
	Country    *string `json:"country,omitempty" db:"country"`
}

// CreateAccommodationRequest represents the request to add an accommodation
type CreateAccommodationRequest struct {
	Name       string   `json:"name" binding:"required,max=150"`
	Type       string   `json:"type" binding:"required,max=50"`
	Rate       float64  `json:"rate" binding:"gte=0"`
	Facilities *string  `json:"facilities,omitempty"`
	Discount   *float64 `json:"discount,omitempty"`
	LocationID int64    `json:"location_id" binding:"required,gt=0"`
}

// Validate checks accommodation pricing rules
func (r *CreateAccommodationRequest) Validate() error {
	if blank(r.Name) {
		return errors.New("name is required")
	}
	return validatePricing(&r.Rate, r.Discount)
}

// UpdateAccommodationRequest represents a partial accommodation update
type UpdateAccommodationRequest struct {
	Name       *string  `json:"name,omitempty" binding:"omitempty,max=150"`
	Type       *string  `json:"type,omitempty" binding:"omitempty,max=50"`
	Rate       *float64 `json:"rate,omitempty"`
	Facilities *string  `json:"facilities,omitempty"`
	Discount   *float64 `json:"discount,omitempty"`
	LocationID *int64   `json:"location_id,omitempty" binding:"omitempty,gt=0"`
}

// Validate checks accommodation pricing rules
func (r *UpdateAccommodationRequest) Validate() error {
	if blankPtr(r.Name) {
		return errors.New("name cannot be empty")
	}
	return validatePricing(r.Rate, r.Discount)
}

func validatePricing(rate, discount *float64) error {
	if rate != nil && *rate < 0 {
		return errors.New("rate cannot be negative")
	}
	if discount != nil && (*discount < 0 || *discount >= 1) {
		return errors.New("discount must be a fraction between 0 and 1")
	}
	return nil
}
