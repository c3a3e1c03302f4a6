package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Booking lifecycle event types
const (
	BookingCreated       = "booking.created"
	BookingUpdated       = "booking.updated"
	BookingStatusChanged = "booking.status_changed"
	BookingDeleted       = "booking.deleted"
	PaymentRecorded      = "payment.recorded"
	PaymentStatusChanged = "payment.status_changed"
)

// Event is the envelope written to the bookings topic
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	BookingID  int64       `json:"booking_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}

// New builds an event with a fresh id
func New(eventType string, bookingID int64, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		BookingID:  bookingID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Encode returns the JSON form of the event
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers booking events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
