package models

import "time"

// Review is a passenger's rating of a booking
type Review struct {
	ID            int64     `json:"id" db:"id"`
	BookingID     int64     `json:"booking_id" db:"booking_id"`
	PassengerID   int64     `json:"passenger_id" db:"passenger_id"`
	Rating        int       `json:"rating" db:"rating"`
	ReviewText    *string   `json:"review_text,omitempty" db:"review_text"`
	ReviewDate    time.Time `json:"review_date" db:"review_date"`
	PassengerName *string   `json:"passenger_name,omitempty" db:"passenger_name"`
}

// CreateReviewRequest represents a review being submitted
type CreateReviewRequest struct {
	PassengerID int64   `json:"passenger_id" binding:"required,gt=0"`
	Rating      int     `json:"rating" binding:"required,min=1,max=5"`
	ReviewText  *string `json:"review_text,omitempty" binding:"omitempty,max=2000"`
}
