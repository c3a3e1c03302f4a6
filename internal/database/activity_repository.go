package database

import (
	"fmt"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// ActivityRepository handles activity database operations
type ActivityRepository struct {
	db DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activitySelect = `
	SELECT a.id, a.name, a.type, a.location_id, a.cost, a.description, l.city, l.country
	FROM activities a
	LEFT JOIN locations l ON l.id = a.location_id
`

// List returns activities with their city and country
func (r *ActivityRepository) List(params models.ListParams) ([]models.Activity, error) {
	query := activitySelect + `
		WHERE ($1 = '' OR a.name ILIKE $2 OR a.type ILIKE $2 OR l.city ILIKE $2)
		ORDER BY a.name, a.id
		LIMIT $3 OFFSET $4
	`

	activities := []models.Activity{}
	if err := r.db.Select(&activities, query, params.Query, likePattern(params.Query), params.Limit, params.Offset); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, nil
}

// GetByID retrieves an activity by ID
func (r *ActivityRepository) GetByID(id int64) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.Get(&activity, activitySelect+` WHERE a.id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return &activity, nil
}

// Create inserts a new activity
func (r *ActivityRepository) Create(req *models.CreateActivityRequest) (*models.Activity, error) {
	activity := &models.Activity{
		Name:        req.Name,
		Type:        req.Type,
		LocationID:  req.LocationID,
		Cost:        req.Cost,
		Description: req.Description,
	}

	query := `
		INSERT INTO activities (name, type, location_id, cost, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(query, activity.Name, activity.Type, activity.LocationID, activity.Cost, activity.Description).
		Scan(&activity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return activity, nil
}

// Update applies a partial update to an activity
func (r *ActivityRepository) Update(id int64, req *models.UpdateActivityRequest) error {
	set := &updateSet{}
	setIfPresent(set, "name", req.Name)
	setIfPresent(set, "type", req.Type)
	setIfPresent(set, "location_id", req.LocationID)
	setIfPresent(set, "cost", req.Cost)
	setIfPresent(set, "description", req.Description)

	return set.exec(r.db, "activities", id)
}

// Delete removes an activity that no booking reserves
func (r *ActivityRepository) Delete(id int64) error {
	err := countDependents(r.db, "activity", id, []dependent{
		{"booking_activities", `SELECT COUNT(*) FROM booking_activities WHERE activity_id = $1`},
	})
	if err != nil {
		return err
	}

	return deleteByID(r.db, "activities", id)
}
