package events

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogPublisher logs events instead of sending them. Used when no brokers are configured.
type LogPublisher struct {
	logger *logrus.Logger
}

// NewLogPublisher creates a publisher that writes to the logger
func NewLogPublisher(logger *logrus.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event at info level
func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"booking_id": event.BookingID,
	}).Info("Booking event")
	return nil
}

// Close is a no-op
func (p *LogPublisher) Close() error {
	return nil
}
