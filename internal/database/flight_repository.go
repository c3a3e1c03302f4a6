package database

import (
	"fmt"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// FlightRepository handles flight database operations
type FlightRepository struct {
	db DB
}

// NewFlightRepository creates a new flight repository
func NewFlightRepository(db DB) *FlightRepository {
	return &FlightRepository{db: db}
}

const flightSelect = `
	SELECT f.id, f.flight_number, f.carrier, f.source_location_id, f.dest_location_id,
	       f.departure_datetime, f.arrival_datetime, f.class, f.fare,
	       src.city AS source_city, dst.city AS dest_city
	FROM flights f
	LEFT JOIN locations src ON src.id = f.source_location_id
	LEFT JOIN locations dst ON dst.id = f.dest_location_id
`

// List returns flights ordered by departure
func (r *FlightRepository) List(params models.ListParams) ([]models.Flight, error) {
	query := flightSelect + `
		WHERE ($1 = '' OR f.flight_number ILIKE $2 OR f.carrier ILIKE $2 OR src.city ILIKE $2 OR dst.city ILIKE $2)
		ORDER BY f.departure_datetime, f.id
		LIMIT $3 OFFSET $4
	`

	flights := []models.Flight{}
	if err := r.db.Select(&flights, query, params.Query, likePattern(params.Query), params.Limit, params.Offset); err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}

	return flights, nil
}

// ListUpcoming returns flights departing after the given time
func (r *FlightRepository) ListUpcoming(after time.Time, limit int) ([]models.Flight, error) {
	query := flightSelect + `
		WHERE f.departure_datetime > $1
		ORDER BY f.departure_datetime, f.id
		LIMIT $2
	`

	flights := []models.Flight{}
	if err := r.db.Select(&flights, query, after, limit); err != nil {
		return nil, fmt.Errorf("failed to list upcoming flights: %w", err)
	}

	return flights, nil
}

// GetByID retrieves a flight by ID
func (r *FlightRepository) GetByID(id int64) (*models.Flight, error) {
	var flight models.Flight
	if err := r.db.Get(&flight, flightSelect+` WHERE f.id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	return &flight, nil
}

// Create inserts a new flight
func (r *FlightRepository) Create(req *models.CreateFlightRequest) (*models.Flight, error) {
	flight := &models.Flight{
		FlightNumber:      req.FlightNumber,
		Carrier:           req.Carrier,
		SourceLocationID:  req.SourceLocationID,
		DestLocationID:    req.DestLocationID,
		DepartureDateTime: req.DepartureDateTime,
		ArrivalDateTime:   req.ArrivalDateTime,
		Class:             req.Class,
		Fare:              req.Fare,
	}

	query := `
		INSERT INTO flights (
			flight_number, carrier, source_location_id, dest_location_id,
			departure_datetime, arrival_datetime, class, fare
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(query,
		flight.FlightNumber, flight.Carrier, flight.SourceLocationID, flight.DestLocationID,
		flight.DepartureDateTime, flight.ArrivalDateTime, flight.Class, flight.Fare,
	).Scan(&flight.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create flight: %w", err)
	}

	return flight, nil
}

// Save writes every editable column of a flight
func (r *FlightRepository) Save(flight *models.Flight) error {
	set := &updateSet{}
	set.add("flight_number", flight.FlightNumber)
	set.add("carrier", flight.Carrier)
	set.add("source_location_id", flight.SourceLocationID)
	set.add("dest_location_id", flight.DestLocationID)
	set.add("departure_datetime", flight.DepartureDateTime)
	set.add("arrival_datetime", flight.ArrivalDateTime)
	set.add("class", flight.Class)
	set.add("fare", flight.Fare)

	return set.exec(r.db, "flights", flight.ID)
}

// Delete removes a flight that no booking leg uses
func (r *FlightRepository) Delete(id int64) error {
	err := countDependents(r.db, "flight", id, []dependent{
		{"booking_transportations", `SELECT COUNT(*) FROM booking_transportations WHERE flight_id = $1`},
	})
	if err != nil {
		return err
	}

	return deleteByID(r.db, "flights", id)
}
