package models

import "errors"

// Activity is an excursion or event that can be added to a booking
type Activity struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Type        string  `json:"type" db:"type"`
	LocationID  int64   `json:"location_id" db:"location_id"`
	Cost        float64 `json:"cost" db:"cost"`
	Description *string `json:"description,omitempty" db:"description"`
	City        *string `json:"city,omitempty" db:"city"`
	Country     *string `json:"country,omitempty" db:"country"`
}

// CreateActivityRequest represents the request to add an activity
type CreateActivityRequest struct {
	Name        string  `json:"name" binding:"required,max=150"`
	Type        string  `json:"type" binding:"required,max=50"`
	LocationID  int64   `json:"location_id" binding:"required,gt=0"`
	Cost        float64 `json:"cost" binding:"gte=0"`
	Description *string `json:"description,omitempty"`
}

// Validate checks the activity fields
func (r *CreateActivityRequest) Validate() error {
	if blank(r.Name) {
		return errors.New("name is required")
	}
	return nil
}

// UpdateActivityRequest represents a partial activity update
type UpdateActivityRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=150"`
	Type        *string  `json:"type,omitempty" binding:"omitempty,max=50"`
	LocationID  *int64   `json:"location_id,omitempty" binding:"omitempty,gt=0"`
	Cost        *float64 `json:"cost,omitempty" binding:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty"`
}

// Validate checks the activity fields
func (r *UpdateActivityRequest) Validate() error {
	if blankPtr(r.Name) {
		return errors.New("name cannot be empty")
	}
	return nil
}
