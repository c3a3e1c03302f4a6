package database

import (
	"fmt"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// CarRentalRepository handles car rental database operations
type CarRentalRepository struct {
	db DB
}

// NewCarRentalRepository creates a new car rental repository
func NewCarRentalRepository(db DB) *CarRentalRepository {
	return &CarRentalRepository{db: db}
}

const carRentalSelect = `
	SELECT c.id, c.company, c.car_type, c.pickup_location_id, c.dropoff_location_id,
	       c.pickup_datetime, c.dropoff_datetime, c.rent,
	       pl.city AS pickup_city, dl.city AS dropoff_city
	FROM car_rentals c
	LEFT JOIN locations pl ON pl.id = c.pickup_location_id
	LEFT JOIN locations dl ON dl.id = c.dropoff_location_id
`

// List returns car rentals ordered by pickup time
func (r *CarRentalRepository) List(params models.ListParams) ([]models.CarRental, error) {
	query := carRentalSelect + `
		WHERE ($1 = '' OR c.company ILIKE $2 OR c.car_type ILIKE $2 OR pl.city ILIKE $2 OR dl.city ILIKE $2)
		ORDER BY c.pickup_datetime, c.id
		LIMIT $3 OFFSET $4
	`

	rentals := []models.CarRental{}
	if err := r.db.Select(&rentals, query, params.Query, likePattern(params.Query), params.Limit, params.Offset); err != nil {
		return nil, fmt.Errorf("failed to list car rentals: %w", err)
	}

	return rentals, nil
}

// GetByID retrieves a car rental by ID
func (r *CarRentalRepository) GetByID(id int64) (*models.CarRental, error) {
	var rental models.CarRental
	if err := r.db.Get(&rental, carRentalSelect+` WHERE c.id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get car rental: %w", err)
	}

	return &rental, nil
}

// Create inserts a new car rental
func (r *CarRentalRepository) Create(req *models.CreateCarRentalRequest) (*models.CarRental, error) {
	rental := &models.CarRental{
		Company:           req.Company,
		CarType:           req.CarType,
		PickupLocationID:  req.PickupLocationID,
		DropoffLocationID: req.DropoffLocationID,
		PickupDateTime:    req.PickupDateTime,
		DropoffDateTime:   req.DropoffDateTime,
		Rent:              req.Rent,
	}

	query := `
		INSERT INTO car_rentals (
			company, car_type, pickup_location_id, dropoff_location_id,
			pickup_datetime, dropoff_datetime, rent
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(query,
		rental.Company, rental.CarType, rental.PickupLocationID, rental.DropoffLocationID,
		rental.PickupDateTime, rental.DropoffDateTime, rental.Rent,
	).Scan(&rental.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create car rental: %w", err)
	}

	return rental, nil
}

// Save writes every editable column of a car rental
func (r *CarRentalRepository) Save(rental *models.CarRental) error {
	set := &updateSet{}
	set.add("company", rental.Company)
	set.add("car_type", rental.CarType)
	set.add("pickup_location_id", rental.PickupLocationID)
	set.add("dropoff_location_id", rental.DropoffLocationID)
	set.add("pickup_datetime", rental.PickupDateTime)
	set.add("dropoff_datetime", rental.DropoffDateTime)
	set.add("rent", rental.Rent)

	return set.exec(r.db, "car_rentals", rental.ID)
}

// Delete removes a car rental that no booking leg uses
func (r *CarRentalRepository) Delete(id int64) error {
	err := countDependents(r.db, "car rental", id, []dependent{
		{"booking_transportations", `SELECT COUNT(*) FROM booking_transportations WHERE car_rental_id = $1`},
	})
	if err != nil {
		return err
	}

	return deleteByID(r.db, "car_rentals", id)
}
