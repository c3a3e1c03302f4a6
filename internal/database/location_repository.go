package database

import (
	"fmt"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// LocationRepository handles location database operations
type LocationRepository struct {
	db DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// List returns locations, optionally filtered by city, state or country
func (r *LocationRepository) List(params models.ListParams) ([]models.Location, error) {
	query := `
		SELECT id, city, state, country
		FROM locations
		WHERE ($1 = '' OR city ILIKE $2 OR state ILIKE $2 OR country ILIKE $2)
		ORDER BY country, city
		LIMIT $3 OFFSET $4
	`

	locations := []models.Location{}
	if err := r.db.Select(&locations, query, params.Query, likePattern(params.Query), params.Limit, params.Offset); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	return locations, nil
}

// GetByID retrieves a location by ID
func (r *LocationRepository) GetByID(id int64) (*models.Location, error) {
	var location models.Location
	query := `SELECT id, city, state, country FROM locations WHERE id = $1`

	if err := r.db.Get(&location, query, id); err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return &location, nil
}

// Create inserts a new location
func (r *LocationRepository) Create(req *models.CreateLocationRequest) (*models.Location, error) {
	location := &models.Location{
		City:    req.City,
		State:   req.State,
		Country: req.Country,
	}

	query := `
		INSERT INTO locations (city, state, country)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := r.db.QueryRow(query, location.City, location.State, location.Country).Scan(&location.ID); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	return location, nil
}

// Update applies a partial update to a location
func (r *LocationRepository) Update(id int64, req *models.UpdateLocationRequest) error {
	set := &updateSet{}
	setIfPresent(set, "city", req.City)
	setIfPresent(set, "state", req.State)
	setIfPresent(set, "country", req.Country)

	return set.exec(r.db, "locations", id)
}

// Delete removes a location that nothing references
func (r *LocationRepository) Delete(id int64) error {
	err := countDependents(r.db, "location", id, []dependent{
		{"accommodations", `SELECT COUNT(*) FROM accommodations WHERE location_id = $1`},
		{"flights", `SELECT COUNT(*) FROM flights WHERE source_location_id = $1 OR dest_location_id = $1`},
		{"car_rentals", `SELECT COUNT(*) FROM car_rentals WHERE pickup_location_id = $1 OR dropoff_location_id = $1`},
		{"cruises", `SELECT COUNT(*) FROM cruises WHERE source_location_id = $1 OR dest_location_id = $1`},
		{"activities", `SELECT COUNT(*) FROM activities WHERE location_id = $1`},
	})
	if err != nil {
		return err
	}

	return deleteByID(r.db, "locations", id)
}
