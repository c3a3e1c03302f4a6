package database

import (
	"fmt"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/jmoiron/sqlx"
)

// TravelGroupRepository handles travel group and membership database operations
type TravelGroupRepository struct {
	db DB
}

// NewTravelGroupRepository creates a new travel group repository
func NewTravelGroupRepository(db DB) *TravelGroupRepository {
	return &TravelGroupRepository{db: db}
}

const travelGroupSelect = `
	SELECT g.id, g.group_name, g.purpose, g.created_by, g.created_date,
	       p.name AS creator_name,
	       (SELECT COUNT(*) FROM group_members gm WHERE gm.group_id = g.id) AS member_count
	FROM travel_groups g
	LEFT JOIN passengers p ON p.id = g.created_by
`

// List returns travel groups with their creator and member count
func (r *TravelGroupRepository) List(params models.ListParams) ([]models.TravelGroup, error) {
	query := travelGroupSelect + `
		WHERE ($1 = '' OR g.group_name ILIKE $2 OR g.purpose ILIKE $2)
		ORDER BY g.created_date DESC, g.id
		LIMIT $3 OFFSET $4
	`

	groups := []models.TravelGroup{}
	if err := r.db.Select(&groups, query, params.Query, likePattern(params.Query), params.Limit, params.Offset); err != nil {
		return nil, fmt.Errorf("failed to list travel groups: %w", err)
	}

	return groups, nil
}

// GetByID retrieves a travel group by ID
func (r *TravelGroupRepository) GetByID(id int64) (*models.TravelGroup, error) {
	var group models.TravelGroup
	if err := r.db.Get(&group, travelGroupSelect+` WHERE g.id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get travel group: %w", err)
	}

	return &group, nil
}

// Create inserts a travel group and adds its creator as the first member
func (r *TravelGroupRepository) Create(req *models.CreateTravelGroupRequest) (*models.TravelGroup, error) {
	group := &models.TravelGroup{
		GroupName: req.GroupName,
		Purpose:   req.Purpose,
		CreatedBy: req.CreatedBy,
	}

	err := withTx(r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRow(`
			INSERT INTO travel_groups (group_name, purpose, created_by, created_date)
			VALUES ($1, $2, $3, CURRENT_DATE)
			RETURNING id, created_date
		`, group.GroupName, group.Purpose, group.CreatedBy).Scan(&group.ID, &group.CreatedDate)
		if err != nil {
			return fmt.Errorf("failed to create travel group: %w", err)
		}

		if _, err := tx.Exec(`
			INSERT INTO group_members (group_id, passenger_id, join_date)
			VALUES ($1, $2, CURRENT_DATE)
		`, group.ID, group.CreatedBy); err != nil {
			return fmt.Errorf("failed to add group creator: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	group.MemberCount = 1
	return group, nil
}

// Update applies a partial update to a travel group
func (r *TravelGroupRepository) Update(id int64, req *models.UpdateTravelGroupRequest) error {
	set := &updateSet{}
	setIfPresent(set, "group_name", req.GroupName)
	setIfPresent(set, "purpose", req.Purpose)

	return set.exec(r.db, "travel_groups", id)
}

// Delete removes a travel group's members and then the group, in one transaction
func (r *TravelGroupRepository) Delete(id int64) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(`DELETE FROM group_members WHERE group_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete group members: %w", err)
		}
		return txExecOne(tx, `DELETE FROM travel_groups WHERE id = $1`, "delete travel group", id)
	})
}

// ListMembers returns the passengers in a travel group
func (r *TravelGroupRepository) ListMembers(groupID int64) ([]models.GroupMember, error) {
	query := `
		SELECT gm.group_id, gm.passenger_id, gm.join_date, p.name, p.email, p.phone
		FROM group_members gm
		JOIN passengers p ON p.id = gm.passenger_id
		WHERE gm.group_id = $1
		ORDER BY gm.join_date, p.name
	`

	members := []models.GroupMember{}
	if err := r.db.Select(&members, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}

	return members, nil
}

// AddMember adds a passenger to a travel group. Adding an existing member is a no-op.
func (r *TravelGroupRepository) AddMember(groupID, passengerID int64) error {
	query := `
		INSERT INTO group_members (group_id, passenger_id, join_date)
		VALUES ($1, $2, CURRENT_DATE)
		ON CONFLICT (group_id, passenger_id) DO NOTHING
	`

	if _, err := r.db.Exec(query, groupID, passengerID); err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}

	return nil
}

// RemoveMember removes a passenger from a travel group
func (r *TravelGroupRepository) RemoveMember(groupID, passengerID int64) error {
	result, err := r.db.Exec(`DELETE FROM group_members WHERE group_id = $1 AND passenger_id = $2`, groupID, passengerID)
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to remove group member: %w", errNotFound)
	}

	return nil
}
