package models

import "errors"

// Location is a city a trip can start, end or stay in
type Location struct {
	ID      int64   `json:"id" db:"id"`
	City    string  `json:"city" db:"city"`
	State   *string `json:"state,omitempty" db:"state"`
	Country string  `json:"country" db:"country"`
}

// CreateLocationRequest represents the request to create a location
type CreateLocationRequest struct {
	City    string  `json:"city" binding:"required,max=100"`
	State   *string `json:"state,omitempty" binding:"omitempty,max=100"`
	Country string  `json:"country" binding:"required,max=100"`
}

// Validate checks required text is not only whitespace
func (r *CreateLocationRequest) Validate() error {
	if blank(r.City) {
		return errors.New("city is required")
	}
	if blank(r.Country) {
		return errors.New("country is required")
	}
	return nil
}

// UpdateLocationRequest represents a partial location update
type UpdateLocationRequest struct {
	City    *string `json:"city,omitempty" binding:"omitempty,max=100"`
	State   *string `json:"state,omitempty" binding:"omitempty,max=100"`
	Country *string `json:"country,omitempty" binding:"omitempty,max=100"`
}

// Validate rejects clearing required columns
func (r *UpdateLocationRequest) Validate() error {
	if blankPtr(r.City) {
		return errors.New("city cannot be empty")
	}
	if blankPtr(r.Country) {
		return errors.New("country cannot be empty")
	}
	return nil
}
