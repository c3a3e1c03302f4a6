package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%paris%", likePattern("paris"))
	assert.Equal(t, "%50\\%%", likePattern(" 50% "))
	assert.Equal(t, "%a\\_b%", likePattern("a_b"))
	assert.Equal(t, `%c:\\x%`, likePattern(`c:\x`))
}

func TestDependentsErrorMessage(t *testing.T) {
	err := &DependentsError{Entity: "location", Dependents: map[string]int{"flights": 2, "activities": 1}}
	assert.Equal(t, "cannot delete location: referenced by activities (1), flights (2)", err.Error())
}

func TestLocationRepository(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLocationRepository(db)

		mock.ExpectQuery(`SELECT id, city, state, country\s+FROM locations`).
			WithArgs("lon", "%lon%", 100, 0).
			WillReturnRows(sqlmock.NewRows([]string{"id", "city", "state", "country"}).
				AddRow(1, "London", nil, "UK").
				AddRow(2, "Londrina", "Parana", "Brazil"))

		params := models.ListParams{Query: "lon"}
		params.Normalize()
		locations, err := repo.List(params)
		require.NoError(t, err)
		require.Len(t, locations, 2)
		assert.Equal(t, "London", locations[0].City)
		assert.Nil(t, locations[0].State)
		require.NotNil(t, locations[1].State)
		assert.Equal(t, "Parana", *locations[1].State)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Get Not Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLocationRepository(db)

		mock.ExpectQuery(`FROM locations WHERE id`).WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

		location, err := repo.GetByID(9)
		assert.Nil(t, location)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Create", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLocationRepository(db)

		mock.ExpectQuery(`INSERT INTO locations`).
			WithArgs("Lisbon", nil, "Portugal").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

		location, err := repo.Create(&models.CreateLocationRequest{City: "Lisbon", Country: "Portugal"})
		require.NoError(t, err)
		assert.Equal(t, int64(12), location.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update Nothing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLocationRepository(db)

		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM locations WHERE id = \$1\)`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, repo.Update(3, &models.UpdateLocationRequest{}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update Nothing On Missing Row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLocationRepository(db)

		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM locations WHERE id = \$1\)`).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.Update(404, &models.UpdateLocationRequest{})
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update Partial", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLocationRepository(db)

		country := "France"
		mock.ExpectExec(`UPDATE locations SET country = \$1 WHERE id = \$2`).
			WithArgs(country, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(3, &models.UpdateLocationRequest{Country: &country}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete Refused With Dependents", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLocationRepository(db)

		mock.ExpectQuery(`FROM accommodations`).WithArgs(int64(4)).WillReturnRows(countRows(2))
		mock.ExpectQuery(`FROM flights`).WithArgs(int64(4)).WillReturnRows(countRows(0))
		mock.ExpectQuery(`FROM car_rentals`).WithArgs(int64(4)).WillReturnRows(countRows(0))
		mock.ExpectQuery(`FROM cruises`).WithArgs(int64(4)).WillReturnRows(countRows(1))
		mock.ExpectQuery(`FROM activities`).WithArgs(int64(4)).WillReturnRows(countRows(0))

		err := repo.Delete(4)
		var depErr *DependentsError
		require.True(t, errors.As(err, &depErr))
		assert.Equal(t, map[string]int{"accommodations": 2, "cruises": 1}, depErr.Dependents)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete Missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLocationRepository(db)

		for _, table := range []string{"accommodations", "flights", "car_rentals", "cruises", "activities"} {
			mock.ExpectQuery(`FROM ` + table).WithArgs(int64(5)).WillReturnRows(countRows(0))
		}
		mock.ExpectExec(`DELETE FROM locations WHERE id`).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(5)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository(t *testing.T) {
	t.Run("Create With Passengers", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "Pending").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
		mock.ExpectExec(`INSERT INTO booking_passengers`).WithArgs(int64(21), int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO booking_passengers`).WithArgs(int64(21), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		booking := &models.Booking{BookingDate: Today(), Status: models.BookingStatusPending}
		require.NoError(t, repo.Create(booking, []int64{1, 2}))
		assert.Equal(t, int64(21), booking.ID)
		assert.Equal(t, 2, booking.PassengerCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Create Rolls Back On Passenger Failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(22))
		mock.ExpectExec(`INSERT INTO booking_passengers`).WillReturnError(fmt.Errorf("fk violation"))
		mock.ExpectRollback()

		err := repo.Create(&models.Booking{BookingDate: Today(), Status: models.BookingStatusPending}, []int64{99})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to add booking passenger")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Add Accommodation Recomputes Total", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		checkIn := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO booking_accommodations`).
			WithArgs(int64(3), int64(8), checkIn, checkIn.AddDate(0, 0, 3), 450.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))
		mock.ExpectQuery(`UPDATE bookings SET total_cost`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"total_cost"}).AddRow(1200.5))
		mock.ExpectCommit()

		stay := &models.BookingAccommodation{
			BookingID:       3,
			AccommodationID: 8,
			CheckInDate:     checkIn,
			CheckOutDate:    checkIn.AddDate(0, 0, 3),
			Cost:            450,
		}
		total, err := repo.AddAccommodation(stay)
		require.NoError(t, err)
		assert.Equal(t, int64(31), stay.ID)
		assert.Equal(t, 1200.5, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Remove Missing Transportation", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM booking_transportations`).
			WithArgs(int64(77), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.RemoveTransportation(3, 77)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete Refused With Payments", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectQuery(`FROM payments`).WithArgs(int64(3)).WillReturnRows(countRows(1))
		mock.ExpectQuery(`FROM reviews`).WithArgs(int64(3)).WillReturnRows(countRows(0))

		err := repo.Delete(3)
		var depErr *DependentsError
		require.True(t, errors.As(err, &depErr))
		assert.Equal(t, 1, depErr.Dependents["payments"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Count By Status", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)

		mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM bookings GROUP BY status`).
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
				AddRow("Pending", 4).
				AddRow("Confirmed", 2))

		counts, err := repo.CountByStatus()
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"Pending": 4, "Confirmed": 2}, counts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestItineraryRepository(t *testing.T) {
	t.Run("Maps Rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewItineraryRepository(db)

		departure := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
		mock.ExpectQuery(`FROM booking_passengers bp`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{
				"booking_id", "status", "booking_accommodation_id", "accommodation_name",
				"booking_transportation_id", "transport_type", "flight_id", "flight_number", "departure_datetime",
			}).
				AddRow(10, "Confirmed", 100, "Harbour Hotel", 200, "Flight", 7, "BA117", departure).
				AddRow(11, "Pending", nil, nil, nil, nil, nil, nil, nil))

		rows, err := repo.GetPassengerItineraryRows(5)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, int64(10), rows[0].BookingID)
		require.NotNil(t, rows[0].FlightNumber)
		assert.Equal(t, "BA117", *rows[0].FlightNumber)
		require.NotNil(t, rows[0].DepartureDateTime)
		assert.True(t, departure.Equal(*rows[0].DepartureDateTime))

		assert.Nil(t, rows[1].BookingAccommodationID)
		assert.Nil(t, rows[1].BookingTransportationID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewItineraryRepository(db)

		mock.ExpectQuery(`FROM booking_passengers bp`).WillReturnError(fmt.Errorf("connection reset"))

		rows, err := repo.GetPassengerItineraryRows(5)
		assert.Nil(t, rows)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get passenger itinerary")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Passengers Of Booking", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewItineraryRepository(db)

		mock.ExpectQuery(`SELECT passenger_id FROM booking_passengers`).
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"passenger_id"}).AddRow(5).AddRow(6))

		ids, err := repo.GetPassengerIDsForBooking(10)
		require.NoError(t, err)
		assert.Equal(t, []int64{5, 6}, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdminRefreshTokenRepository(t *testing.T) {
	t.Run("Stores Only The Hash", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAdminRefreshTokenRepository(db)

		mock.ExpectExec(`INSERT INTO admin_refresh_tokens`).
			WithArgs(sqlmock.AnyArg(), HashToken("plain-token"), "10.0.0.1", nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Store(uuid.New(), "plain-token", "10.0.0.1", "", time.Now().Add(time.Hour)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Revoke Unknown", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAdminRefreshTokenRepository(db)

		mock.ExpectExec(`UPDATE admin_refresh_tokens`).
			WithArgs(sqlmock.AnyArg(), HashToken("gone")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.True(t, errors.Is(repo.Revoke("gone"), sql.ErrNoRows))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete Expired", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAdminRefreshTokenRepository(db)

		mock.ExpectExec(`DELETE FROM admin_refresh_tokens`).WillReturnResult(sqlmock.NewResult(0, 4))

		n, err := repo.DeleteExpired(time.Now(), 7*24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

func TestTravelGroupRepository(t *testing.T) {
	t.Run("Create Adds Creator As Member", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTravelGroupRepository(db)

		created := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO travel_groups`).
			WithArgs("Alps Hikers", sqlmock.AnyArg(), int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_date"}).AddRow(12, created))
		mock.ExpectExec(`INSERT INTO group_members`).
			WithArgs(int64(12), int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		group, err := repo.Create(&models.CreateTravelGroupRequest{GroupName: "Alps Hikers", CreatedBy: 4})
		require.NoError(t, err)
		assert.Equal(t, int64(12), group.ID)
		assert.Equal(t, created, group.CreatedDate)
		assert.Equal(t, 1, group.MemberCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete Removes Members Then Group", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTravelGroupRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM group_members WHERE group_id = \$1`).
			WithArgs(int64(12)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM travel_groups WHERE id = \$1`).
			WithArgs(int64(12)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Delete(12))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete Missing Rolls Back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTravelGroupRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM group_members WHERE group_id = \$1`).
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM travel_groups WHERE id = \$1`).
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(404)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("List Members", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTravelGroupRepository(db)

		joined := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`FROM group_members gm\s+JOIN passengers p`).
			WithArgs(int64(12)).
			WillReturnRows(sqlmock.NewRows([]string{"group_id", "passenger_id", "join_date", "name", "email", "phone"}).
				AddRow(12, 4, joined, "Ana Silva", "ana@example.com", nil).
				AddRow(12, 7, joined, "Ben Okafor", nil, "+447700900123"))

		members, err := repo.ListMembers(12)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "Ana Silva", members[0].Name)
		assert.Nil(t, members[0].Phone)
		assert.Nil(t, members[1].Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Add Member", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTravelGroupRepository(db)

		mock.ExpectExec(`INSERT INTO group_members[\s\S]*ON CONFLICT \(group_id, passenger_id\) DO NOTHING`).
			WithArgs(int64(12), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.AddMember(12, 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Remove Missing Member", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTravelGroupRepository(db)

		mock.ExpectExec(`DELETE FROM group_members WHERE group_id = \$1 AND passenger_id = \$2`).
			WithArgs(int64(12), int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RemoveMember(12, 99)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
