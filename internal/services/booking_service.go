package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/apraveen001/Travel-Agency-System/pkg/events"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidStatusTransition is returned when a booking leaves a terminal status
	ErrInvalidStatusTransition = errors.New("booking status cannot change from a cancelled or completed booking")

	// ErrBookingClosed is returned when legs of a cancelled or completed booking are changed
	ErrBookingClosed = errors.New("booking is cancelled or completed and can no longer be changed")

	// ErrPassengerNotOnBooking is returned when a review is written by someone who did not travel
	ErrPassengerNotOnBooking = errors.New("passenger is not on this booking")
)

// BookingService manages bookings, their legs, payments and reviews.
// Every change invalidates the cached itineraries of the affected passengers and
// publishes a booking event.
type BookingService struct {
	bookings       *database.BookingRepository
	passengers     *database.PassengerRepository
	accommodations *database.AccommodationRepository
	activities     *database.ActivityRepository
	flights        *database.FlightRepository
	carRentals     *database.CarRentalRepository
	cruises        *database.CruiseRepository
	payments       *database.PaymentRepository
	reviews        *database.ReviewRepository
	itineraries    *ItineraryService
	publisher      events.Publisher
	logger         *logrus.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(db database.DB, itineraries *ItineraryService, publisher events.Publisher, logger *logrus.Logger) *BookingService {
	return &BookingService{
		bookings:       database.NewBookingRepository(db),
		passengers:     database.NewPassengerRepository(db),
		accommodations: database.NewAccommodationRepository(db),
		activities:     database.NewActivityRepository(db),
		flights:        database.NewFlightRepository(db),
		carRentals:     database.NewCarRentalRepository(db),
		cruises:        database.NewCruiseRepository(db),
		payments:       database.NewPaymentRepository(db),
		reviews:        database.NewReviewRepository(db),
		itineraries:    itineraries,
		publisher:      publisher,
		logger:         logger,
	}
}

// List returns bookings matching the filter
func (s *BookingService) List(params database.BookingListParams) ([]models.Booking, error) {
	return s.bookings.List(params)
}

// Get returns a booking with its passengers and legs
func (s *BookingService) Get(id int64) (*models.BookingDetail, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, err
	}

	detail := &models.BookingDetail{Booking: *booking}
	if detail.Passengers, err = s.passengers.ListByBooking(id); err != nil {
		return nil, err
	}
	if detail.Accommodations, err = s.bookings.ListAccommodations(id); err != nil {
		return nil, err
	}
	if detail.Transportations, err = s.bookings.ListTransportations(id); err != nil {
		return nil, err
	}
	if detail.Activities, err = s.bookings.ListActivities(id); err != nil {
		return nil, err
	}

	return detail, nil
}

// Create opens a booking for the given passengers
func (s *BookingService) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		GroupName:   req.GroupName,
		Purpose:     req.Purpose,
		BookingDate: database.Today(),
		EmployeeID:  req.EmployeeID,
		Status:      models.BookingStatusPending,
	}
	if req.Status != nil {
		booking.Status = models.BookingStatus(*req.Status)
	}
	if date, _ := models.ParseOptionalDate("booking_date", req.BookingDate); date != nil {
		booking.BookingDate = *date
	}

	if err := s.bookings.Create(booking, req.PassengerIDs); err != nil {
		return nil, err
	}

	s.invalidatePassengers(ctx, req.PassengerIDs...)
	s.publish(ctx, events.BookingCreated, booking.ID, map[string]interface{}{
		"status":        booking.Status,
		"passenger_ids": req.PassengerIDs,
	})

	return booking, nil
}

// Update changes a booking's own columns
func (s *BookingService) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.bookings.Update(id, req); err != nil {
		return err
	}
	if req.Empty() {
		return nil
	}

	s.changed(ctx, id, events.BookingUpdated, nil)
	return nil
}

// UpdateStatus moves a booking to a new status. Cancelled and completed bookings are final.
func (s *BookingService) UpdateStatus(ctx context.Context, id int64, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(status) {
		return nil, ErrInvalidStatusTransition
	}
	if booking.Status == status {
		return booking, nil
	}

	if err := s.bookings.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	previous := booking.Status
	booking.Status = status
	s.changed(ctx, id, events.BookingStatusChanged, map[string]interface{}{
		"from": previous,
		"to":   status,
	})

	return booking, nil
}

// Delete removes a booking that has no payments or reviews
func (s *BookingService) Delete(ctx context.Context, id int64) error {
	passengerIDs, err := s.passengerIDs(id)
	if err != nil {
		return err
	}

	if err := s.bookings.Delete(id); err != nil {
		return err
	}

	s.invalidatePassengers(ctx, passengerIDs...)
	s.publish(ctx, events.BookingDeleted, id, nil)
	return nil
}

// AddPassenger puts a passenger on a booking
func (s *BookingService) AddPassenger(ctx context.Context, bookingID, passengerID int64) error {
	if err := s.ensureOpen(bookingID); err != nil {
		return err
	}
	if _, err := s.passengers.GetByID(passengerID); err != nil {
		return err
	}

	if err := s.bookings.AddPassenger(bookingID, passengerID); err != nil {
		return err
	}

	s.changed(ctx, bookingID, events.BookingUpdated, map[string]interface{}{"passenger_added": passengerID})
	return nil
}

// RemovePassenger takes a passenger off a booking
func (s *BookingService) RemovePassenger(ctx context.Context, bookingID, passengerID int64) error {
	if err := s.ensureOpen(bookingID); err != nil {
		return err
	}
	if err := s.bookings.RemovePassenger(bookingID, passengerID); err != nil {
		return err
	}

	// the removed passenger is no longer reachable through the booking
	s.invalidatePassengers(ctx, passengerID)
	s.changed(ctx, bookingID, events.BookingUpdated, map[string]interface{}{"passenger_removed": passengerID})
	return nil
}

// AddAccommodation adds a stay. Without a cost it is priced at the discounted rate per night.
func (s *BookingService) AddAccommodation(ctx context.Context, bookingID int64, req *models.AddAccommodationLegRequest) (*models.BookingAccommodation, float64, error) {
	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return nil, 0, err
	}
	if err := s.ensureOpen(bookingID); err != nil {
		return nil, 0, err
	}

	accommodation, err := s.accommodations.GetByID(req.AccommodationID)
	if err != nil {
		return nil, 0, err
	}

	stay := &models.BookingAccommodation{
		BookingID:         bookingID,
		AccommodationID:   req.AccommodationID,
		CheckInDate:       checkIn,
		CheckOutDate:      checkOut,
		AccommodationName: &accommodation.Name,
	}
	if req.Cost != nil {
		stay.Cost = *req.Cost
	} else {
		stay.Cost = StayCost(accommodation.Rate, accommodation.Discount, models.Nights(checkIn, checkOut))
	}

	total, err := s.bookings.AddAccommodation(stay)
	if err != nil {
		return nil, 0, err
	}

	s.changed(ctx, bookingID, events.BookingUpdated, map[string]interface{}{"total_cost": total})
	return stay, total, nil
}

// RemoveAccommodation removes a stay
func (s *BookingService) RemoveAccommodation(ctx context.Context, bookingID, legID int64) (float64, error) {
	return s.removeLeg(ctx, bookingID, func() (float64, error) {
		return s.bookings.RemoveAccommodation(bookingID, legID)
	})
}

// AddTransportation adds a flight, car rental or cruise leg. Without a cost it is priced
// at the referenced fare or rent.
func (s *BookingService) AddTransportation(ctx context.Context, bookingID int64, req *models.AddTransportationLegRequest) (*models.BookingTransportation, float64, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}
	if err := s.ensureOpen(bookingID); err != nil {
		return nil, 0, err
	}

	leg := &models.BookingTransportation{
		BookingID:     bookingID,
		TransportKind: models.TransportKind(req.Kind),
		FlightID:      req.FlightID,
		CarRentalID:   req.CarRentalID,
		CruiseID:      req.CruiseID,
	}

	price, err := s.transportPrice(leg)
	if err != nil {
		return nil, 0, err
	}
	leg.Cost = price
	if req.Cost != nil {
		leg.Cost = *req.Cost
	}

	total, err := s.bookings.AddTransportation(leg)
	if err != nil {
		return nil, 0, err
	}

	s.changed(ctx, bookingID, events.BookingUpdated, map[string]interface{}{"total_cost": total})
	return leg, total, nil
}

// transportPrice loads the referenced leg, which also checks that it exists
func (s *BookingService) transportPrice(leg *models.BookingTransportation) (float64, error) {
	switch leg.TransportKind {
	case models.TransportKindFlight:
		flight, err := s.flights.GetByID(*leg.FlightID)
		if err != nil {
			return 0, err
		}
		return flight.Fare, nil
	case models.TransportKindCarRental:
		rental, err := s.carRentals.GetByID(*leg.CarRentalID)
		if err != nil {
			return 0, err
		}
		return rental.Rent, nil
	case models.TransportKindCruise:
		cruise, err := s.cruises.GetByID(*leg.CruiseID)
		if err != nil {
			return 0, err
		}
		return cruise.Fare, nil
	}
	return 0, fmt.Errorf("unsupported transport kind %q", leg.TransportKind)
}

// RemoveTransportation removes a transportation leg
func (s *BookingService) RemoveTransportation(ctx context.Context, bookingID, legID int64) (float64, error) {
	return s.removeLeg(ctx, bookingID, func() (float64, error) {
		return s.bookings.RemoveTransportation(bookingID, legID)
	})
}

// AddActivity reserves an activity. Without a cost it is priced per participant.
// Reserving the same activity again replaces the reservation.
func (s *BookingService) AddActivity(ctx context.Context, bookingID int64, req *models.AddBookingActivityRequest) (*models.BookingActivity, float64, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}
	if err := s.ensureOpen(bookingID); err != nil {
		return nil, 0, err
	}

	activity, err := s.activities.GetByID(req.ActivityID)
	if err != nil {
		return nil, 0, err
	}

	scheduled, _ := models.ParseOptionalDate("scheduled_date", req.ScheduledDate)
	reservation := &models.BookingActivity{
		BookingID:     bookingID,
		ActivityID:    req.ActivityID,
		ScheduledDate: scheduled,
		Participants:  req.Participants,
		Cost:          roundCents(activity.Cost * float64(req.Participants)),
		ActivityName:  &activity.Name,
	}
	if req.Cost != nil {
		reservation.Cost = *req.Cost
	}

	total, err := s.bookings.AddActivity(reservation)
	if err != nil {
		return nil, 0, err
	}

	s.changed(ctx, bookingID, events.BookingUpdated, map[string]interface{}{"total_cost": total})
	return reservation, total, nil
}

// RemoveActivity drops an activity reservation
func (s *BookingService) RemoveActivity(ctx context.Context, bookingID, activityID int64) (float64, error) {
	return s.removeLeg(ctx, bookingID, func() (float64, error) {
		return s.bookings.RemoveActivity(bookingID, activityID)
	})
}

func (s *BookingService) removeLeg(ctx context.Context, bookingID int64, remove func() (float64, error)) (float64, error) {
	if err := s.ensureOpen(bookingID); err != nil {
		return 0, err
	}

	total, err := remove()
	if err != nil {
		return 0, err
	}

	s.changed(ctx, bookingID, events.BookingUpdated, map[string]interface{}{"total_cost": total})
	return total, nil
}

// ListPayments returns the payments of a booking
func (s *BookingService) ListPayments(bookingID int64) ([]models.Payment, error) {
	if _, err := s.bookings.GetByID(bookingID); err != nil {
		return nil, err
	}
	return s.payments.ListByBooking(bookingID)
}

// RecordPayment stores a payment with a masked card number
func (s *BookingService) RecordPayment(ctx context.Context, bookingID int64, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.bookings.GetByID(bookingID); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		BookingID:   bookingID,
		PaymentDate: database.Today(),
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		ExpiryDate:  req.ExpiryDate,
		Status:      models.PaymentStatusPending,
	}
	if req.CardNumber != nil {
		masked := models.MaskCardNumber(*req.CardNumber)
		payment.CardNumber = &masked
	}
	if req.Status != nil {
		payment.Status = models.PaymentStatus(*req.Status)
	}
	if date, _ := models.ParseOptionalDate("payment_date", req.PaymentDate); date != nil {
		payment.PaymentDate = *date
	}

	if err := s.payments.Create(payment); err != nil {
		return nil, err
	}

	s.publish(ctx, events.PaymentRecorded, bookingID, map[string]interface{}{
		"payment_id": payment.ID,
		"amount":     payment.Amount,
		"status":     payment.Status,
	})
	return payment, nil
}

// UpdatePaymentStatus changes the status of a payment
func (s *BookingService) UpdatePaymentStatus(ctx context.Context, paymentID int64, status models.PaymentStatus) (*models.Payment, error) {
	if err := s.payments.UpdateStatus(paymentID, status); err != nil {
		return nil, err
	}

	payment, err := s.payments.GetByID(paymentID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.PaymentStatusChanged, payment.BookingID, map[string]interface{}{
		"payment_id": payment.ID,
		"status":     payment.Status,
	})
	return payment, nil
}

// ListReviews returns the reviews of a booking
func (s *BookingService) ListReviews(bookingID int64) ([]models.Review, error) {
	if _, err := s.bookings.GetByID(bookingID); err != nil {
		return nil, err
	}
	return s.reviews.ListByBooking(bookingID)
}

// AddReview stores a review written by a passenger of the booking
func (s *BookingService) AddReview(bookingID int64, req *models.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.bookings.GetByID(bookingID); err != nil {
		return nil, err
	}

	onBooking, err := s.bookings.HasPassenger(bookingID, req.PassengerID)
	if err != nil {
		return nil, err
	}
	if !onBooking {
		return nil, ErrPassengerNotOnBooking
	}

	review := &models.Review{
		BookingID:   bookingID,
		PassengerID: req.PassengerID,
		Rating:      req.Rating,
		ReviewText:  req.ReviewText,
	}
	if err := s.reviews.Create(review); err != nil {
		return nil, err
	}

	return review, nil
}

// DeleteReview removes a review
func (s *BookingService) DeleteReview(id int64) error {
	return s.reviews.Delete(id)
}

// StayCost prices a stay at the discounted nightly rate, rounded to cents
func StayCost(rate, discount float64, nights int) float64 {
	return roundCents(rate * (1 - discount) * float64(nights))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *BookingService) ensureOpen(bookingID int64) error {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return err
	}
	if booking.Status.IsTerminal() {
		return ErrBookingClosed
	}
	return nil
}

func (s *BookingService) passengerIDs(bookingID int64) ([]int64, error) {
	passengers, err := s.passengers.ListByBooking(bookingID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(passengers))
	for i, p := range passengers {
		ids[i] = p.ID
	}
	return ids, nil
}

// changed invalidates the booking's itineraries and publishes an event
func (s *BookingService) changed(ctx context.Context, bookingID int64, eventType string, payload interface{}) {
	if s.itineraries != nil {
		if err := s.itineraries.InvalidateBooking(ctx, bookingID); err != nil {
			s.logger.WithError(err).WithField("booking_id", bookingID).Warn("Failed to invalidate itineraries")
		}
	}
	s.publish(ctx, eventType, bookingID, payload)
}

func (s *BookingService) invalidatePassengers(ctx context.Context, passengerIDs ...int64) {
	if s.itineraries == nil {
		return
	}
	if err := s.itineraries.InvalidatePassengers(ctx, passengerIDs...); err != nil {
		s.logger.WithError(err).WithField("passenger_ids", passengerIDs).Warn("Failed to invalidate itineraries")
	}
}

// publish logs delivery failures instead of returning them
func (s *BookingService) publish(ctx context.Context, eventType string, bookingID int64, payload interface{}) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.publisher.Publish(ctx, events.New(eventType, bookingID, payload)); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"event_type": eventType,
			"booking_id": bookingID,
		}).Error("Failed to publish booking event")
	}
}
