package database

import (
	"fmt"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/jmoiron/sqlx"
)

// BookingRepository handles bookings and their passenger, accommodation,
// transportation and activity legs
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingListParams filters the booking list
type BookingListParams struct {
	models.ListParams
	Status      string `form:"status"`
	PassengerID int64  `form:"passenger_id"`
}

const bookingSelect = `
	SELECT b.id, b.group_name, b.purpose, b.booking_date, b.employee_id, b.total_cost, b.status,
	       e.name AS agent_name,
	       (SELECT COUNT(*) FROM booking_passengers bp WHERE bp.booking_id = b.id) AS passenger_count
	FROM bookings b
	LEFT JOIN employees e ON e.id = b.employee_id
`

// recomputeTotal sets total_cost to the sum of every leg cost
const recomputeTotal = `
	UPDATE bookings SET total_cost =
		COALESCE((SELECT SUM(cost) FROM booking_accommodations WHERE booking_id = $1), 0) +
		COALESCE((SELECT SUM(cost) FROM booking_transportations WHERE booking_id = $1), 0) +
		COALESCE((SELECT SUM(cost) FROM booking_activities WHERE booking_id = $1), 0)
	WHERE id = $1
	RETURNING total_cost
`

// List returns bookings, newest first
func (r *BookingRepository) List(params BookingListParams) ([]models.Booking, error) {
	query := bookingSelect + `
		WHERE ($1 = '' OR b.group_name ILIKE $2 OR b.purpose ILIKE $2 OR e.name ILIKE $2)
		  AND ($3 = '' OR b.status = $3)
		  AND ($4 = 0 OR EXISTS (
		        SELECT 1 FROM booking_passengers bp WHERE bp.booking_id = b.id AND bp.passenger_id = $4))
		ORDER BY b.booking_date DESC, b.id
		LIMIT $5 OFFSET $6
	`

	bookings := []models.Booking{}
	err := r.db.Select(&bookings, query,
		params.Query, likePattern(params.Query), params.Status, params.PassengerID,
		params.Limit, params.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(id int64) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Get(&booking, bookingSelect+` WHERE b.id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// Create inserts a booking and its passengers in one transaction
func (r *BookingRepository) Create(booking *models.Booking, passengerIDs []int64) error {
	err := withTx(r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRow(`
			INSERT INTO bookings (group_name, purpose, booking_date, employee_id, total_cost, status)
			VALUES ($1, $2, $3, $4, 0, $5)
			RETURNING id
		`, booking.GroupName, booking.Purpose, booking.BookingDate, booking.EmployeeID, booking.Status).Scan(&booking.ID)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		for _, passengerID := range passengerIDs {
			if _, err := tx.Exec(`INSERT INTO booking_passengers (booking_id, passenger_id) VALUES ($1, $2)`, booking.ID, passengerID); err != nil {
				return fmt.Errorf("failed to add booking passenger: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	booking.PassengerCount = len(passengerIDs)
	return nil
}

// Update applies a partial update to a booking's own columns
func (r *BookingRepository) Update(id int64, req *models.UpdateBookingRequest) error {
	set := &updateSet{}
	setIfPresent(set, "group_name", req.GroupName)
	setIfPresent(set, "purpose", req.Purpose)
	setIfPresent(set, "employee_id", req.EmployeeID)

	bookingDate, err := models.ParseOptionalDate("booking_date", req.BookingDate)
	if err != nil {
		return err
	}
	setIfPresent(set, "booking_date", bookingDate)

	return set.exec(r.db, "bookings", id)
}

// UpdateStatus sets the booking status
func (r *BookingRepository) UpdateStatus(id int64, status models.BookingStatus) error {
	set := &updateSet{}
	set.add("status", status)
	return set.exec(r.db, "bookings", id)
}

// Delete removes a booking without payments or reviews. Legs are removed by cascade.
func (r *BookingRepository) Delete(id int64) error {
	err := countDependents(r.db, "booking", id, []dependent{
		{"payments", `SELECT COUNT(*) FROM payments WHERE booking_id = $1`},
		{"reviews", `SELECT COUNT(*) FROM reviews WHERE booking_id = $1`},
	})
	if err != nil {
		return err
	}

	return deleteByID(r.db, "bookings", id)
}

// HasPassenger reports whether the passenger travels on the booking
func (r *BookingRepository) HasPassenger(bookingID, passengerID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM booking_passengers WHERE booking_id = $1 AND passenger_id = $2)`
	if err := r.db.Get(&exists, query, bookingID, passengerID); err != nil {
		return false, fmt.Errorf("failed to check booking passenger: %w", err)
	}
	return exists, nil
}

// AddPassenger attaches a passenger to a booking. Adding twice is a no-op.
func (r *BookingRepository) AddPassenger(bookingID, passengerID int64) error {
	query := `
		INSERT INTO booking_passengers (booking_id, passenger_id)
		VALUES ($1, $2)
		ON CONFLICT (booking_id, passenger_id) DO NOTHING
	`
	if _, err := r.db.Exec(query, bookingID, passengerID); err != nil {
		return fmt.Errorf("failed to add booking passenger: %w", err)
	}
	return nil
}

// RemovePassenger detaches a passenger from a booking
func (r *BookingRepository) RemovePassenger(bookingID, passengerID int64) error {
	query := `DELETE FROM booking_passengers WHERE booking_id = $1 AND passenger_id = $2`
	return execOne(r.db, query, "remove booking passenger", bookingID, passengerID)
}

// ListAccommodations returns the stays of a booking
func (r *BookingRepository) ListAccommodations(bookingID int64) ([]models.BookingAccommodation, error) {
	query := `
		SELECT ba.id, ba.booking_id, ba.accommodation_id, ba.check_in_date, ba.check_out_date, ba.cost,
		       a.name AS accommodation_name
		FROM booking_accommodations ba
		LEFT JOIN accommodations a ON a.id = ba.accommodation_id
		WHERE ba.booking_id = $1
		ORDER BY ba.check_in_date, ba.id
	`

	stays := []models.BookingAccommodation{}
	if err := r.db.Select(&stays, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to list booking accommodations: %w", err)
	}
	return stays, nil
}

// ListTransportations returns the transportation legs of a booking
func (r *BookingRepository) ListTransportations(bookingID int64) ([]models.BookingTransportation, error) {
	query := `
		SELECT bt.id, bt.booking_id, bt.transport_type_id, tt.name AS transport_type,
		       bt.flight_id, bt.car_rental_id, bt.cruise_id, bt.cost
		FROM booking_transportations bt
		JOIN transportation_types tt ON tt.id = bt.transport_type_id
		WHERE bt.booking_id = $1
		ORDER BY bt.id
	`

	legs := []models.BookingTransportation{}
	if err := r.db.Select(&legs, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to list booking transportations: %w", err)
	}
	return legs, nil
}

// ListActivities returns the activities reserved on a booking
func (r *BookingRepository) ListActivities(bookingID int64) ([]models.BookingActivity, error) {
	query := `
		SELECT ba.booking_id, ba.activity_id, ba.scheduled_date, ba.participants, ba.cost,
		       a.name AS activity_name
		FROM booking_activities ba
		LEFT JOIN activities a ON a.id = ba.activity_id
		WHERE ba.booking_id = $1
		ORDER BY ba.scheduled_date NULLS LAST, ba.activity_id
	`

	activities := []models.BookingActivity{}
	if err := r.db.Select(&activities, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to list booking activities: %w", err)
	}
	return activities, nil
}

// AddAccommodation inserts a stay and returns the booking's new total
func (r *BookingRepository) AddAccommodation(stay *models.BookingAccommodation) (float64, error) {
	return r.mutateLegs(stay.BookingID, func(tx *sqlx.Tx) error {
		return tx.QueryRow(`
			INSERT INTO booking_accommodations (booking_id, accommodation_id, check_in_date, check_out_date, cost)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, stay.BookingID, stay.AccommodationID, stay.CheckInDate, stay.CheckOutDate, stay.Cost).Scan(&stay.ID)
	})
}

// RemoveAccommodation deletes a stay and returns the booking's new total
func (r *BookingRepository) RemoveAccommodation(bookingID, legID int64) (float64, error) {
	return r.mutateLegs(bookingID, func(tx *sqlx.Tx) error {
		return txExecOne(tx, `DELETE FROM booking_accommodations WHERE id = $1 AND booking_id = $2`,
			"remove booking accommodation", legID, bookingID)
	})
}

// AddTransportation inserts a transportation leg and returns the booking's new total
func (r *BookingRepository) AddTransportation(leg *models.BookingTransportation) (float64, error) {
	return r.mutateLegs(leg.BookingID, func(tx *sqlx.Tx) error {
		return tx.QueryRow(`
			INSERT INTO booking_transportations (booking_id, transport_type_id, flight_id, car_rental_id, cruise_id, cost)
			VALUES ($1, (SELECT id FROM transportation_types WHERE name = $2), $3, $4, $5, $6)
			RETURNING id, transport_type_id
		`, leg.BookingID, leg.TransportKind, leg.FlightID, leg.CarRentalID, leg.CruiseID, leg.Cost).
			Scan(&leg.ID, &leg.TransportTypeID)
	})
}

// RemoveTransportation deletes a transportation leg and returns the booking's new total
func (r *BookingRepository) RemoveTransportation(bookingID, legID int64) (float64, error) {
	return r.mutateLegs(bookingID, func(tx *sqlx.Tx) error {
		return txExecOne(tx, `DELETE FROM booking_transportations WHERE id = $1 AND booking_id = $2`,
			"remove booking transportation", legID, bookingID)
	})
}

// AddActivity reserves an activity and returns the booking's new total
func (r *BookingRepository) AddActivity(activity *models.BookingActivity) (float64, error) {
	return r.mutateLegs(activity.BookingID, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO booking_activities (booking_id, activity_id, scheduled_date, participants, cost)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (booking_id, activity_id) DO UPDATE
			SET scheduled_date = EXCLUDED.scheduled_date,
			    participants = EXCLUDED.participants,
			    cost = EXCLUDED.cost
		`, activity.BookingID, activity.ActivityID, activity.ScheduledDate, activity.Participants, activity.Cost)
		return err
	})
}

// RemoveActivity drops an activity reservation and returns the booking's new total
func (r *BookingRepository) RemoveActivity(bookingID, activityID int64) (float64, error) {
	return r.mutateLegs(bookingID, func(tx *sqlx.Tx) error {
		return txExecOne(tx, `DELETE FROM booking_activities WHERE booking_id = $1 AND activity_id = $2`,
			"remove booking activity", bookingID, activityID)
	})
}

// mutateLegs runs a leg change and the total recomputation in one transaction
func (r *BookingRepository) mutateLegs(bookingID int64, change func(tx *sqlx.Tx) error) (float64, error) {
	var total float64
	err := withTx(r.db, func(tx *sqlx.Tx) error {
		if err := change(tx); err != nil {
			return fmt.Errorf("failed to update booking legs: %w", err)
		}
		if err := tx.QueryRow(recomputeTotal, bookingID).Scan(&total); err != nil {
			return fmt.Errorf("failed to recompute booking total: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}

// CountByStatus returns the number of bookings per status
func (r *BookingRepository) CountByStatus() (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := r.db.Select(&rows, `SELECT status, COUNT(*) AS count FROM bookings GROUP BY status`); err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Today returns the current date at midnight UTC, the default booking date
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func execOne(db DB, query, action string, args ...interface{}) error {
	result, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to %s: %w", action, errNotFound)
	}
	return nil
}

func txExecOne(tx *sqlx.Tx, query, action string, args ...interface{}) error {
	result, err := tx.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to %s: %w", action, errNotFound)
	}
	return nil
}
