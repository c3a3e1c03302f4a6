package database

import (
	"fmt"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// PassengerRepository handles passenger database operations
type PassengerRepository struct {
	db DB
}

// NewPassengerRepository creates a new passenger repository
func NewPassengerRepository(db DB) *PassengerRepository {
	return &PassengerRepository{db: db}
}

const passengerColumns = `id, name, gender, age, email, phone`

// List returns passengers, optionally filtered by name, email or phone
func (r *PassengerRepository) List(params models.ListParams) ([]models.Passenger, error) {
	query := `
		SELECT ` + passengerColumns + `
		FROM passengers
		WHERE ($1 = '' OR name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2)
		ORDER BY name, id
		LIMIT $3 OFFSET $4
	`

	passengers := []models.Passenger{}
	if err := r.db.Select(&passengers, query, params.Query, likePattern(params.Query), params.Limit, params.Offset); err != nil {
		return nil, fmt.Errorf("failed to list passengers: %w", err)
	}

	return passengers, nil
}

// GetByID retrieves a passenger by ID
func (r *PassengerRepository) GetByID(id int64) (*models.Passenger, error) {
	var passenger models.Passenger
	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE id = $1`

	if err := r.db.Get(&passenger, query, id); err != nil {
		return nil, fmt.Errorf("failed to get passenger: %w", err)
	}

	return &passenger, nil
}

// ListByBooking returns the passengers travelling on a booking
func (r *PassengerRepository) ListByBooking(bookingID int64) ([]models.Passenger, error) {
	query := `
		SELECT p.id, p.name, p.gender, p.age, p.email, p.phone
		FROM passengers p
		JOIN booking_passengers bp ON bp.passenger_id = p.id
		WHERE bp.booking_id = $1
		ORDER BY p.name, p.id
	`

	passengers := []models.Passenger{}
	if err := r.db.Select(&passengers, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to list booking passengers: %w", err)
	}

	return passengers, nil
}

// Create inserts a new passenger. A duplicate email surfaces as a unique violation.
func (r *PassengerRepository) Create(req *models.CreatePassengerRequest) (*models.Passenger, error) {
	passenger := &models.Passenger{
		Name:   req.Name,
		Gender: req.Gender,
		Age:    req.Age,
		Email:  req.Email,
		Phone:  req.Phone,
	}

	query := `
		INSERT INTO passengers (name, gender, age, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(query, passenger.Name, passenger.Gender, passenger.Age, passenger.Email, passenger.Phone).
		Scan(&passenger.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create passenger: %w", err)
	}

	return passenger, nil
}

// Update applies a partial update to a passenger
func (r *PassengerRepository) Update(id int64, req *models.UpdatePassengerRequest) error {
	set := &updateSet{}
	setIfPresent(set, "name", req.Name)
	setIfPresent(set, "gender", req.Gender)
	setIfPresent(set, "age", req.Age)
	setIfPresent(set, "email", req.Email)
	setIfPresent(set, "phone", req.Phone)

	return set.exec(r.db, "passengers", id)
}

// Delete removes a passenger with no bookings, groups or reviews
func (r *PassengerRepository) Delete(id int64) error {
	err := countDependents(r.db, "passenger", id, []dependent{
		{"booking_passengers", `SELECT COUNT(*) FROM booking_passengers WHERE passenger_id = $1`},
		{"travel_groups", `SELECT COUNT(*) FROM travel_groups WHERE created_by = $1`},
		{"group_members", `SELECT COUNT(*) FROM group_members WHERE passenger_id = $1`},
		{"reviews", `SELECT COUNT(*) FROM reviews WHERE passenger_id = $1`},
	})
	if err != nil {
		return err
	}

	return deleteByID(r.db, "passengers", id)
}
