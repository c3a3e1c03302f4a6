package services

import (
	"context"
	"fmt"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/itinerary"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var (
	itineraryCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "itinerary_cache_requests_total",
		Help: "Itinerary cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	itineraryBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "itinerary_build_duration_seconds",
		Help:    "Time spent querying and aggregating an itinerary on a cache miss",
		Buckets: prometheus.DefBuckets,
	})
)

// ItineraryService builds passenger itineraries, with an optional cache in front
type ItineraryService struct {
	passengerRepo *database.PassengerRepository
	itineraryRepo *database.ItineraryRepository
	cache         ItineraryCache
	ttl           time.Duration
	logger        *logrus.Logger
}

// NewItineraryService creates a new itinerary service. A nil cache disables caching.
func NewItineraryService(
	passengerRepo *database.PassengerRepository,
	itineraryRepo *database.ItineraryRepository,
	cache ItineraryCache,
	ttl time.Duration,
	logger *logrus.Logger,
) *ItineraryService {
	return &ItineraryService{
		passengerRepo: passengerRepo,
		itineraryRepo: itineraryRepo,
		cache:         cache,
		ttl:           ttl,
		logger:        logger,
	}
}

// GetPassengerItinerary returns every booking of a passenger with its distinct legs.
// A missing passenger yields sql.ErrNoRows.
func (s *ItineraryService) GetPassengerItinerary(ctx context.Context, passengerID int64) (*models.PassengerItinerary, error) {
	passenger, err := s.passengerRepo.GetByID(passengerID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, passengerID)
		switch {
		case err != nil:
			itineraryCacheRequests.WithLabelValues("error").Inc()
			s.logger.WithError(err).WithField("passenger_id", passengerID).Warn("Itinerary cache read failed")
		case ok:
			itineraryCacheRequests.WithLabelValues("hit").Inc()
			cached.Passenger = *passenger
			return cached, nil
		default:
			itineraryCacheRequests.WithLabelValues("miss").Inc()
		}
	}

	start := time.Now()
	rows, err := s.itineraryRepo.GetPassengerItineraryRows(passengerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load itinerary rows: %w", err)
	}

	result := &models.PassengerItinerary{
		Passenger:   *passenger,
		Bookings:    itinerary.Aggregate(rows),
		GeneratedAt: time.Now().UTC(),
	}
	itineraryBuildDuration.Observe(time.Since(start).Seconds())

	if s.cache != nil {
		if err := s.cache.Set(ctx, result, s.ttl); err != nil {
			s.logger.WithError(err).WithField("passenger_id", passengerID).Warn("Itinerary cache write failed")
		}
	}

	return result, nil
}

// InvalidateBooking drops the cached itineraries of every passenger on the booking
func (s *ItineraryService) InvalidateBooking(ctx context.Context, bookingID int64) error {
	if s.cache == nil {
		return nil
	}

	passengerIDs, err := s.itineraryRepo.GetPassengerIDsForBooking(bookingID)
	if err != nil {
		return err
	}

	return s.cache.Delete(ctx, passengerIDs...)
}

// InvalidatePassengers drops the cached itineraries of the given passengers
func (s *ItineraryService) InvalidatePassengers(ctx context.Context, passengerIDs ...int64) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, passengerIDs...)
}
