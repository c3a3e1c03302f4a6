package models

import (
	"errors"
	"time"
)

// TravelGroup is a set of passengers travelling together
type TravelGroup struct {
	ID          int64     `json:"id" db:"id"`
	GroupName   string    `json:"group_name" db:"group_name"`
	Purpose     *string   `json:"purpose,omitempty" db:"purpose"`
	CreatedBy   int64     `json:"created_by" db:"created_by"`
	CreatedDate time.Time `json:"created_date" db:"created_date"`
	CreatorName *string   `json:"creator_name,omitempty" db:"creator_name"`
	MemberCount int       `json:"member_count" db:"member_count"`
}

// GroupMember is a passenger's membership in a travel group
type GroupMember struct {
	GroupID     int64     `json:"group_id" db:"group_id"`
	PassengerID int64     `json:"passenger_id" db:"passenger_id"`
	JoinDate    time.Time `json:"join_date" db:"join_date"`
	Name        string    `json:"name" db:"name"`
	Email       *string   `json:"email,omitempty" db:"email"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
}

// CreateTravelGroupRequest represents the request to create a travel group
type CreateTravelGroupRequest struct {
	GroupName string  `json:"group_name" binding:"required,max=150"`
	Purpose   *string `json:"purpose,omitempty" binding:"omitempty,max=100"`
	CreatedBy int64   `json:"created_by" binding:"required,gt=0"`
}

// Validate checks the group fields
func (r *CreateTravelGroupRequest) Validate() error {
	if blank(r.GroupName) {
		return errors.New("group name is required")
	}
	return nil
}

// UpdateTravelGroupRequest represents a partial travel group update
type UpdateTravelGroupRequest struct {
	GroupName *string `json:"group_name,omitempty" binding:"omitempty,max=150"`
	Purpose   *string `json:"purpose,omitempty" binding:"omitempty,max=100"`
}

// Validate checks the group fields
func (r *UpdateTravelGroupRequest) Validate() error {
	if blankPtr(r.GroupName) {
		return errors.New("group name cannot be empty")
	}
	return nil
}

// AddGroupMemberRequest represents the request to add a passenger to a group
type AddGroupMemberRequest struct {
	PassengerID int64 `json:"passenger_id" binding:"required,gt=0"`
}
