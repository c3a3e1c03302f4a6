package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/apraveen001/Travel-Agency-System/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBookingService(t *testing.T) (*BookingService, sqlmock.Sqlmock, *memoryCache, *recordingPublisher) {
	db, mock := newServiceMockDB(t)
	cache := newMemoryCache()
	publisher := &recordingPublisher{}
	itineraries := newTestItineraryService(db, cache)
	return NewBookingService(db, itineraries, publisher, quietLogger()), mock, cache, publisher
}

func expectBooking(mock sqlmock.Sqlmock, id int64, status models.BookingStatus) {
	mock.ExpectQuery(`FROM bookings b(.+)WHERE b.id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "total_cost", "status", "passenger_count"}).
			AddRow(id, 0.0, string(status), 1))
}

func expectBookingPassengers(mock sqlmock.Sqlmock, bookingID int64, ids ...int64) {
	rows := sqlmock.NewRows([]string{"passenger_id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	mock.ExpectQuery(`SELECT passenger_id FROM booking_passengers WHERE booking_id = \$1`).
		WithArgs(bookingID).
		WillReturnRows(rows)
}

func TestStayCost(t *testing.T) {
	assert.Equal(t, 270.0, StayCost(100, 0.1, 3))
	assert.Equal(t, 0.0, StayCost(100, 0.1, 0))
	assert.Equal(t, 33.33, StayCost(33.333, 0, 1))
}

func TestBookingService_UpdateStatus(t *testing.T) {
	t.Run("Moves Pending To Confirmed", func(t *testing.T) {
		service, mock, cache, publisher := newTestBookingService(t)
		cache.entries[4] = &models.PassengerItinerary{Passenger: models.Passenger{ID: 4}}

		expectBooking(mock, 1, models.BookingStatusPending)
		mock.ExpectExec(`UPDATE bookings SET status = \$1 WHERE id = \$2`).
			WithArgs(models.BookingStatusConfirmed, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectBookingPassengers(mock, 1, 4)

		booking, err := service.UpdateStatus(context.Background(), 1, models.BookingStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
		assert.Equal(t, []string{events.BookingStatusChanged}, publisher.types())
		assert.NotContains(t, cache.entries, int64(4))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Terminal Status Is Final", func(t *testing.T) {
		service, mock, _, publisher := newTestBookingService(t)

		expectBooking(mock, 1, models.BookingStatusCancelled)

		_, err := service.UpdateStatus(context.Background(), 1, models.BookingStatusConfirmed)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
		assert.Empty(t, publisher.types())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Same Status Is A No-op", func(t *testing.T) {
		service, mock, _, publisher := newTestBookingService(t)

		expectBooking(mock, 1, models.BookingStatusCompleted)

		booking, err := service.UpdateStatus(context.Background(), 1, models.BookingStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCompleted, booking.Status)
		assert.Empty(t, publisher.types())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingService_AddAccommodationDefaultsCost(t *testing.T) {
	service, mock, cache, publisher := newTestBookingService(t)
	cache.entries[9] = &models.PassengerItinerary{Passenger: models.Passenger{ID: 9}}

	expectBooking(mock, 1, models.BookingStatusPending)
	mock.ExpectQuery(`FROM accommodations a(.+)WHERE a.id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "rate", "discount", "location_id"}).
			AddRow(3, "Harbour Inn", "Hotel", 100.0, 0.1, 1))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO booking_accommodations`).
		WithArgs(int64(1), int64(3), sqlmock.AnyArg(), sqlmock.AnyArg(), 270.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`UPDATE bookings SET total_cost`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"total_cost"}).AddRow(520.0))
	mock.ExpectCommit()
	expectBookingPassengers(mock, 1, 9)

	stay, total, err := service.AddAccommodation(context.Background(), 1, &models.AddAccommodationLegRequest{
		AccommodationID: 3,
		CheckInDate:     "2026-01-01",
		CheckOutDate:    "2026-01-04",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), stay.ID)
	assert.Equal(t, 270.0, stay.Cost)
	assert.Equal(t, 520.0, total)
	assert.Equal(t, []string{events.BookingUpdated}, publisher.types())
	assert.NotContains(t, cache.entries, int64(9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_AddAccommodationRejectsBadDates(t *testing.T) {
	service, mock, _, _ := newTestBookingService(t)

	_, _, err := service.AddAccommodation(context.Background(), 1, &models.AddAccommodationLegRequest{
		AccommodationID: 3,
		CheckInDate:     "2026-01-04",
		CheckOutDate:    "2026-01-04",
	})
	assert.EqualError(t, err, "check-out must be after check-in")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_ClosedBookingRejectsLegChanges(t *testing.T) {
	service, mock, _, publisher := newTestBookingService(t)

	expectBooking(mock, 1, models.BookingStatusCompleted)

	_, err := service.RemoveTransportation(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrBookingClosed)
	assert.Empty(t, publisher.types())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_AddTransportationUsesFare(t *testing.T) {
	service, mock, _, _ := newTestBookingService(t)
	flightID := int64(8)

	expectBooking(mock, 1, models.BookingStatusConfirmed)
	mock.ExpectQuery(`FROM flights f(.+)WHERE f.id = \$1`).
		WithArgs(flightID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "flight_number", "fare"}).AddRow(8, "QF1", 450.5))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO booking_transportations`).
		WithArgs(int64(1), models.TransportKindFlight, &flightID, nil, nil, 450.5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "transport_type_id"}).AddRow(21, 1))
	mock.ExpectQuery(`UPDATE bookings SET total_cost`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"total_cost"}).AddRow(450.5))
	mock.ExpectCommit()
	expectBookingPassengers(mock, 1)

	leg, total, err := service.AddTransportation(context.Background(), 1, &models.AddTransportationLegRequest{
		Kind:     "Flight",
		FlightID: &flightID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), leg.TransportTypeID)
	assert.Equal(t, 450.5, leg.Cost)
	assert.Equal(t, 450.5, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_RecordPaymentMasksCard(t *testing.T) {
	service, mock, _, publisher := newTestBookingService(t)
	card := "4111 1111 1111 1234"
	expiry := "12/29"

	expectBooking(mock, 1, models.BookingStatusConfirmed)
	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(int64(1), sqlmock.AnyArg(), 200.0, models.PaymentTypeCreditCard,
			sqlmock.AnyArg(), sqlmock.AnyArg(), models.PaymentStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30))

	payment, err := service.RecordPayment(context.Background(), 1, &models.CreatePaymentRequest{
		Amount:      200,
		PaymentType: models.PaymentTypeCreditCard,
		CardNumber:  &card,
		ExpiryDate:  &expiry,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30), payment.ID)
	require.NotNil(t, payment.CardNumber)
	assert.Equal(t, "XXXX-XXXX-XXXX-1234", *payment.CardNumber)
	assert.Equal(t, []string{events.PaymentRecorded}, publisher.types())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_UpdatePaymentStatusPublishesStatusChange(t *testing.T) {
	service, mock, _, publisher := newTestBookingService(t)

	mock.ExpectExec(`UPDATE payments SET status = \$1 WHERE id = \$2`).
		WithArgs(models.PaymentStatusCompleted, int64(30)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM payments WHERE id = \$1`).
		WithArgs(int64(30)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "amount", "payment_type", "status"}).
			AddRow(30, 1, 200.0, "Credit Card", "Completed"))

	payment, err := service.UpdatePaymentStatus(context.Background(), 30, models.PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, []string{events.PaymentStatusChanged}, publisher.types())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_EmptyUpdate(t *testing.T) {
	t.Run("Missing Booking Is Not Found", func(t *testing.T) {
		service, mock, _, publisher := newTestBookingService(t)

		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM bookings WHERE id = \$1\)`).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := service.Update(context.Background(), 404, &models.UpdateBookingRequest{})
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Empty(t, publisher.types())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Existing Booking Publishes Nothing", func(t *testing.T) {
		service, mock, _, publisher := newTestBookingService(t)

		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM bookings WHERE id = \$1\)`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, service.Update(context.Background(), 1, &models.UpdateBookingRequest{}))
		assert.Empty(t, publisher.types())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingService_AddReviewRequiresTraveller(t *testing.T) {
	service, mock, _, _ := newTestBookingService(t)

	expectBooking(mock, 1, models.BookingStatusCompleted)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1), int64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := service.AddReview(1, &models.CreateReviewRequest{PassengerID: 6, Rating: 5})
	assert.ErrorIs(t, err, ErrPassengerNotOnBooking)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_DeleteRefusedWithPayments(t *testing.T) {
	service, mock, _, publisher := newTestBookingService(t)

	mock.ExpectQuery(`FROM passengers p(.+)JOIN booking_passengers`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "Ada"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payments`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reviews`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := service.Delete(context.Background(), 1)
	var depErr *database.DependentsError
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, map[string]int{"payments": 2}, depErr.Dependents)
	assert.Empty(t, publisher.types())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_PublishFailureDoesNotFailChange(t *testing.T) {
	service, mock, _, publisher := newTestBookingService(t)
	publisher.err = errors.New("broker unavailable")

	expectBooking(mock, 1, models.BookingStatusPending)
	mock.ExpectExec(`UPDATE bookings SET status`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectBookingPassengers(mock, 1)

	_, err := service.UpdateStatus(context.Background(), 1, models.BookingStatusCancelled)
	assert.NoError(t, err)
	assert.Len(t, publisher.types(), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
