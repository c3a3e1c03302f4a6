package database

import (
	"fmt"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// ReviewRepository handles review database operations
type ReviewRepository struct {
	db DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ListByBooking returns the reviews of a booking, newest first
func (r *ReviewRepository) ListByBooking(bookingID int64) ([]models.Review, error) {
	query := `
		SELECT rv.id, rv.booking_id, rv.passenger_id, rv.rating, rv.review_text, rv.review_date,
		       p.name AS passenger_name
		FROM reviews rv
		LEFT JOIN passengers p ON p.id = rv.passenger_id
		WHERE rv.booking_id = $1
		ORDER BY rv.review_date DESC, rv.id
	`

	reviews := []models.Review{}
	if err := r.db.Select(&reviews, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// Create inserts a review dated today
func (r *ReviewRepository) Create(review *models.Review) error {
	query := `
		INSERT INTO reviews (booking_id, passenger_id, rating, review_text, review_date)
		VALUES ($1, $2, $3, $4, CURRENT_DATE)
		RETURNING id, review_date
	`

	err := r.db.QueryRow(query, review.BookingID, review.PassengerID, review.Rating, review.ReviewText).
		Scan(&review.ID, &review.ReviewDate)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// Delete removes a review
func (r *ReviewRepository) Delete(id int64) error {
	return deleteByID(r.db, "reviews", id)
}

// AverageRating returns the mean rating across all reviews
func (r *ReviewRepository) AverageRating() (float64, error) {
	var avg float64
	if err := r.db.Get(&avg, `SELECT COALESCE(AVG(rating), 0) FROM reviews`); err != nil {
		return 0, fmt.Errorf("failed to average ratings: %w", err)
	}
	return avg, nil
}
