package database

import (
	"fmt"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// PaymentRepository handles payment database operations
type PaymentRepository struct {
	db DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, booking_id, payment_date, amount, payment_type, card_number, expiry_date, status`

// ListByBooking returns the payments recorded against a booking
func (r *PaymentRepository) ListByBooking(bookingID int64) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY payment_date, id`

	payments := []models.Payment{}
	if err := r.db.Select(&payments, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepository) GetByID(id int64) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Get(&payment, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

// Create inserts a payment. The card number must already be masked.
func (r *PaymentRepository) Create(payment *models.Payment) error {
	query := `
		INSERT INTO payments (booking_id, payment_date, amount, payment_type, card_number, expiry_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(query,
		payment.BookingID, payment.PaymentDate, payment.Amount, payment.PaymentType,
		payment.CardNumber, payment.ExpiryDate, payment.Status,
	).Scan(&payment.ID)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// UpdateStatus sets the status of a payment
func (r *PaymentRepository) UpdateStatus(id int64, status models.PaymentStatus) error {
	set := &updateSet{}
	set.add("status", status)
	return set.exec(r.db, "payments", id)
}

// SumByStatus returns the total amount of payments in a status
func (r *PaymentRepository) SumByStatus(status models.PaymentStatus) (float64, error) {
	var total float64
	if err := r.db.Get(&total, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}
