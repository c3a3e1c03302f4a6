package database

import (
	"fmt"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// AccommodationRepository handles accommodation database operations
type AccommodationRepository struct {
	db DB
}

// NewAccommodationRepository creates a new accommodation repository
func NewAccommodationRepository(db DB) *AccommodationRepository {
	return &AccommodationRepository{db: db}
}

const accommodationSelect = `
	SELECT a.id, a.name, a.type, a.rate, a.facilities, a.discount, a.location_id,
	       l.city, l.country
	FROM accommodations a
	LEFT JOIN locations l ON l.id = a.location_id
`

// List returns accommodations with their city and country
func (r *AccommodationRepository) List(params models.ListParams) ([]models.Accommodation, error) {
	query := accommodationSelect + `
		WHERE ($1 = '' OR a.name ILIKE $2 OR a.type ILIKE $2 OR l.city ILIKE $2 OR l.country ILIKE $2)
		ORDER BY a.name, a.id
		LIMIT $3 OFFSET $4
	`

	accommodations := []models.Accommodation{}
	if err := r.db.Select(&accommodations, query, params.Query, likePattern(params.Query), params.Limit, params.Offset); err != nil {
		return nil, fmt.Errorf("failed to list accommodations: %w", err)
	}

	return accommodations, nil
}

// GetByID retrieves an accommodation by ID
func (r *AccommodationRepository) GetByID(id int64) (*models.Accommodation, error) {
	var accommodation models.Accommodation
	if err := r.db.Get(&accommodation, accommodationSelect+` WHERE a.id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get accommodation: %w", err)
	}

	return &accommodation, nil
}

// Create inserts a new accommodation. Discount defaults to zero.
func (r *AccommodationRepository) Create(req *models.CreateAccommodationRequest) (*models.Accommodation, error) {
	accommodation := &models.Accommodation{
		Name:       req.Name,
		Type:       req.Type,
		Rate:       req.Rate,
		Facilities: req.Facilities,
		LocationID: req.LocationID,
	}
	if req.Discount != nil {
		accommodation.Discount = *req.Discount
	}

	query := `
		INSERT INTO accommodations (name, type, rate, facilities, discount, location_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(query,
		accommodation.Name, accommodation.Type, accommodation.Rate,
		accommodation.Facilities, accommodation.Discount, accommodation.LocationID,
	).Scan(&accommodation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create accommodation: %w", err)
	}

	return accommodation, nil
}

// Update applies a partial update to an accommodation
func (r *AccommodationRepository) Update(id int64, req *models.UpdateAccommodationRequest) error {
	set := &updateSet{}
	setIfPresent(set, "name", req.Name)
	setIfPresent(set, "type", req.Type)
	setIfPresent(set, "rate", req.Rate)
	setIfPresent(set, "facilities", req.Facilities)
	setIfPresent(set, "discount", req.Discount)
	setIfPresent(set, "location_id", req.LocationID)

	return set.exec(r.db, "accommodations", id)
}

// Delete removes an accommodation that no booking uses
func (r *AccommodationRepository) Delete(id int64) error {
	err := countDependents(r.db, "accommodation", id, []dependent{
		{"booking_accommodations", `SELECT COUNT(*) FROM booking_accommodations WHERE accommodation_id = $1`},
	})
	if err != nil {
		return err
	}

	return deleteByID(r.db, "accommodations", id)
}
