package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// PaymentStatus represents the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

// IsValid reports whether the status is a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment types that carry card details
const (
	PaymentTypeCreditCard = "Credit Card"
	PaymentTypeDebitCard  = "Debit Card"
)

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

// Payment is money received against a booking. CardNumber is stored masked.
type Payment struct {
	ID          int64         `json:"id" db:"id"`
	BookingID   int64         `json:"booking_id" db:"booking_id"`
	PaymentDate time.Time     `json:"payment_date" db:"payment_date"`
	Amount      float64       `json:"amount" db:"amount"`
	PaymentType string        `json:"payment_type" db:"payment_type"`
	CardNumber  *string       `json:"card_number,omitempty" db:"card_number"`
	ExpiryDate  *string       `json:"expiry_date,omitempty" db:"expiry_date"`
	Status      PaymentStatus `json:"status" db:"status"`
}

// CreatePaymentRequest represents a payment being recorded
type CreatePaymentRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	PaymentType string  `json:"payment_type" binding:"required,oneof='Credit Card' 'Debit Card' Cash 'Bank Transfer' PayPal"`
	CardNumber  *string `json:"card_number,omitempty"`
	ExpiryDate  *string `json:"expiry_date,omitempty"`  // Format: MM/YY
	PaymentDate *string `json:"payment_date,omitempty"` // Format: YYYY-MM-DD, defaults to today
	Status      *string `json:"status,omitempty"`
}

// Validate checks card details and status
func (r *CreatePaymentRequest) Validate() error {
	isCard := r.PaymentType == PaymentTypeCreditCard || r.PaymentType == PaymentTypeDebitCard
	if isCard {
		if r.CardNumber == nil {
			return errors.New("card_number is required for card payments")
		}
		digits := cardDigits(*r.CardNumber)
		if len(digits) < 12 || len(digits) > 19 {
			return errors.New("card_number must have 12 to 19 digits")
		}
		if r.ExpiryDate == nil || !expiryPattern.MatchString(*r.ExpiryDate) {
			return errors.New("expiry_date must be in MM/YY format")
		}
	}
	if r.Status != nil && !PaymentStatus(*r.Status).IsValid() {
		return errors.New("status must be Pending, Completed, Failed or Refunded")
	}
	if _, err := ParseOptionalDate("payment_date", r.PaymentDate); err != nil {
		return err
	}
	return nil
}

// UpdatePaymentStatusRequest represents a payment status change
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Completed Failed Refunded"`
}

// MaskCardNumber keeps only the last four digits
func MaskCardNumber(number string) string {
	digits := cardDigits(number)
	if len(digits) < 4 {
		return "XXXX-XXXX-XXXX-XXXX"
	}
	return "XXXX-XXXX-XXXX-" + digits[len(digits)-4:]
}

func cardDigits(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
