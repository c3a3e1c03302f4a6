package database

import (
	"fmt"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// ItineraryRepository runs the passenger itinerary join
type ItineraryRepository struct {
	db DB
}

// NewItineraryRepository creates a new itinerary repository
func NewItineraryRepository(db DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// passengerItineraryQuery yields one row per booking x accommodation stay x transportation leg.
// Leg columns are NULL for bookings without legs of that kind.
const passengerItineraryQuery = `
	SELECT
		b.id AS booking_id, b.group_name, b.purpose, b.booking_date, b.total_cost, b.status,
		e.name AS agent_name,

		ba.id AS booking_accommodation_id, ba.check_in_date, ba.check_out_date, ba.cost AS accommodation_cost,
		a.name AS accommodation_name, a.type AS accommodation_type,
		al.city AS accommodation_city, al.country AS accommodation_country,

		bt.id AS booking_transportation_id, bt.cost AS transport_cost, tt.name AS transport_type,

		f.id AS flight_id, f.flight_number, f.carrier, f.departure_datetime, f.arrival_datetime,
		f.class AS flight_class, f.fare AS flight_fare,
		fs.city AS flight_source_city, fs.country AS flight_source_country,
		fd.city AS flight_dest_city, fd.country AS flight_dest_country,

		cr.id AS car_rental_id, cr.company AS rental_company, cr.car_type,
		cr.pickup_datetime, cr.dropoff_datetime, cr.rent,
		cp.city AS pickup_city, cp.country AS pickup_country,
		cd.city AS dropoff_city, cd.country AS dropoff_country,

		c.id AS cruise_id, c.cruise_name, c.line AS cruise_line,
		c.departure_date AS cruise_departure_date, c.return_date AS cruise_return_date, c.fare AS cruise_fare,
		cs.city AS cruise_source_city, cs.country AS cruise_source_country,
		cde.city AS cruise_dest_city, cde.country AS cruise_dest_country
	FROM booking_passengers bp
	JOIN bookings b ON b.id = bp.booking_id
	LEFT JOIN employees e ON e.id = b.employee_id
	LEFT JOIN booking_accommodations ba ON ba.booking_id = b.id
	LEFT JOIN accommodations a ON a.id = ba.accommodation_id
	LEFT JOIN locations al ON al.id = a.location_id
	LEFT JOIN booking_transportations bt ON bt.booking_id = b.id
	LEFT JOIN transportation_types tt ON tt.id = bt.transport_type_id
	LEFT JOIN flights f ON f.id = bt.flight_id
	LEFT JOIN locations fs ON fs.id = f.source_location_id
	LEFT JOIN locations fd ON fd.id = f.dest_location_id
	LEFT JOIN car_rentals cr ON cr.id = bt.car_rental_id
	LEFT JOIN locations cp ON cp.id = cr.pickup_location_id
	LEFT JOIN locations cd ON cd.id = cr.dropoff_location_id
	LEFT JOIN cruises c ON c.id = bt.cruise_id
	LEFT JOIN locations cs ON cs.id = c.source_location_id
	LEFT JOIN locations cde ON cde.id = c.dest_location_id
	WHERE bp.passenger_id = $1
	ORDER BY b.booking_date DESC, b.id, ba.check_in_date, bt.id
`

// GetPassengerItineraryRows returns the flat itinerary rows of a passenger in itinerary order
func (r *ItineraryRepository) GetPassengerItineraryRows(passengerID int64) ([]models.FlatItineraryRow, error) {
	rows := []models.FlatItineraryRow{}
	if err := r.db.Select(&rows, passengerItineraryQuery, passengerID); err != nil {
		return nil, fmt.Errorf("failed to get passenger itinerary: %w", err)
	}

	return rows, nil
}

// GetPassengerIDsForBooking returns the passengers whose itinerary includes the booking
func (r *ItineraryRepository) GetPassengerIDsForBooking(bookingID int64) ([]int64, error) {
	ids := []int64{}
	if err := r.db.Select(&ids, `SELECT passenger_id FROM booking_passengers WHERE booking_id = $1`, bookingID); err != nil {
		return nil, fmt.Errorf("failed to get booking passengers: %w", err)
	}

	return ids, nil
}
