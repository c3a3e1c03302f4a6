package services

import (
	"math"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// availableOptionsLimit caps each list of the available options
const availableOptionsLimit = 50

// DashboardService assembles the dashboard and available options views
type DashboardService struct {
	dashboard *database.DashboardRepository
	bookings  *database.BookingRepository
	payments  *database.PaymentRepository
	reviews   *database.ReviewRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db database.DB) *DashboardService {
	return &DashboardService{
		dashboard: database.NewDashboardRepository(db),
		bookings:  database.NewBookingRepository(db),
		payments:  database.NewPaymentRepository(db),
		reviews:   database.NewReviewRepository(db),
	}
}

// Stats returns counts per entity, bookings per status and payment totals
func (s *DashboardService) Stats() (*models.DashboardStats, error) {
	counts, err := s.dashboard.Counts()
	if err != nil {
		return nil, err
	}

	byStatus, err := s.bookings.CountByStatus()
	if err != nil {
		return nil, err
	}
	for _, status := range []models.BookingStatus{
		models.BookingStatusPending, models.BookingStatusConfirmed,
		models.BookingStatusCancelled, models.BookingStatusCompleted,
	} {
		if _, ok := byStatus[string(status)]; !ok {
			byStatus[string(status)] = 0
		}
	}

	revenue, err := s.payments.SumByStatus(models.PaymentStatusCompleted)
	if err != nil {
		return nil, err
	}

	pending, err := s.payments.SumByStatus(models.PaymentStatusPending)
	if err != nil {
		return nil, err
	}

	rating, err := s.reviews.AverageRating()
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		Counts:           counts,
		BookingsByStatus: byStatus,
		Revenue:          revenue,
		PendingPayments:  pending,
		AverageRating:    math.Round(rating*100) / 100,
	}, nil
}

// AvailableOptions returns accommodations and flights that have not departed
func (s *DashboardService) AvailableOptions() (*models.AvailableOptions, error) {
	accommodations, err := s.dashboard.AvailableAccommodations(availableOptionsLimit)
	if err != nil {
		return nil, err
	}

	flights, err := s.dashboard.AvailableFlights(time.Now(), availableOptionsLimit)
	if err != nil {
		return nil, err
	}

	return &models.AvailableOptions{Accommodations: accommodations, Flights: flights}, nil
}
