package database

import (
	"fmt"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// CruiseRepository handles cruise database operations
type CruiseRepository struct {
	db DB
}

// NewCruiseRepository creates a new cruise repository
func NewCruiseRepository(db DB) *CruiseRepository {
	return &CruiseRepository{db: db}
}

const cruiseSelect = `
	SELECT c.id, c.cruise_name, c.line, c.source_location_id, c.dest_location_id,
	       c.departure_date, c.return_date, c.fare,
	       src.city AS source_city, dst.city AS dest_city
	FROM cruises c
	LEFT JOIN locations src ON src.id = c.source_location_id
	LEFT JOIN locations dst ON dst.id = c.dest_location_id
`

// List returns cruises ordered by departure date
func (r *CruiseRepository) List(params models.ListParams) ([]models.Cruise, error) {
	query := cruiseSelect + `
		WHERE ($1 = '' OR c.cruise_name ILIKE $2 OR c.line ILIKE $2 OR src.city ILIKE $2 OR dst.city ILIKE $2)
		ORDER BY c.departure_date, c.id
		LIMIT $3 OFFSET $4
	`

	cruises := []models.Cruise{}
	if err := r.db.Select(&cruises, query, params.Query, likePattern(params.Query), params.Limit, params.Offset); err != nil {
		return nil, fmt.Errorf("failed to list cruises: %w", err)
	}

	return cruises, nil
}

// GetByID retrieves a cruise by ID
func (r *CruiseRepository) GetByID(id int64) (*models.Cruise, error) {
	var cruise models.Cruise
	if err := r.db.Get(&cruise, cruiseSelect+` WHERE c.id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get cruise: %w", err)
	}

	return &cruise, nil
}

// Create inserts a new cruise
func (r *CruiseRepository) Create(req *models.CreateCruiseRequest) (*models.Cruise, error) {
	departure, ret, err := req.Dates()
	if err != nil {
		return nil, err
	}

	cruise := &models.Cruise{
		CruiseName:       req.CruiseName,
		Line:             req.Line,
		SourceLocationID: req.SourceLocationID,
		DestLocationID:   req.DestLocationID,
		DepartureDate:    departure,
		ReturnDate:       ret,
		Fare:             req.Fare,
	}

	query := `
		INSERT INTO cruises (
			cruise_name, line, source_location_id, dest_location_id,
			departure_date, return_date, fare
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err = r.db.QueryRow(query,
		cruise.CruiseName, cruise.Line, cruise.SourceLocationID, cruise.DestLocationID,
		cruise.DepartureDate, cruise.ReturnDate, cruise.Fare,
	).Scan(&cruise.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create cruise: %w", err)
	}

	return cruise, nil
}

// Save writes every editable column of a cruise
func (r *CruiseRepository) Save(cruise *models.Cruise) error {
	set := &updateSet{}
	set.add("cruise_name", cruise.CruiseName)
	set.add("line", cruise.Line)
	set.add("source_location_id", cruise.SourceLocationID)
	set.add("dest_location_id", cruise.DestLocationID)
	set.add("departure_date", cruise.DepartureDate)
	set.add("return_date", cruise.ReturnDate)
	set.add("fare", cruise.Fare)

	return set.exec(r.db, "cruises", cruise.ID)
}

// Delete removes a cruise that no booking leg uses
func (r *CruiseRepository) Delete(id int64) error {
	err := countDependents(r.db, "cruise", id, []dependent{
		{"booking_transportations", `SELECT COUNT(*) FROM booking_transportations WHERE cruise_id = $1`},
	})
	if err != nil {
		return err
	}

	return deleteByID(r.db, "cruises", id)
}
