package models

import (
	"errors"
	"time"
)

// EmployeeRole is the job role of an agency employee
type EmployeeRole string

const (
	EmployeeRoleAgent   EmployeeRole = "Agent"
	EmployeeRoleManager EmployeeRole = "Manager"
	EmployeeRoleAdmin   EmployeeRole = "Admin"
	EmployeeRoleSupport EmployeeRole = "Support"
)

// IsValid reports whether the role is one of the known roles
func (r EmployeeRole) IsValid() bool {
	switch r {
	case EmployeeRoleAgent, EmployeeRoleManager, EmployeeRoleAdmin, EmployeeRoleSupport:
		return true
	}
	return false
}

// Employee is an agency staff member. SupervisorName is filled by list and get queries.
type Employee struct {
	ID             int64        `json:"id" db:"id"`
	Name           string       `json:"name" db:"name"`
	Role           EmployeeRole `json:"role" db:"role"`
	JoinDate       time.Time    `json:"join_date" db:"join_date"`
	SupervisorID   *int64       `json:"supervisor_id,omitempty" db:"supervisor_id"`
	SupervisorName *string      `json:"supervisor_name,omitempty" db:"supervisor_name"`
}

// CreateEmployeeRequest represents the request to add an employee
type CreateEmployeeRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Role         string  `json:"role" binding:"required"`
	JoinDate     *string `json:"join_date,omitempty"` // Format: YYYY-MM-DD, defaults to today
	SupervisorID *int64  `json:"supervisor_id,omitempty"`
}

// Validate checks employee business rules
func (r *CreateEmployeeRequest) Validate() error {
	if blank(r.Name) {
		return errors.New("name is required")
	}
	if !EmployeeRole(r.Role).IsValid() {
		return errors.New("role must be Agent, Manager, Admin or Support")
	}
	if _, err := ParseOptionalDate("join_date", r.JoinDate); err != nil {
		return err
	}
	return nil
}

// UpdateEmployeeRequest represents a partial employee update
type UpdateEmployeeRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Role         *string `json:"role,omitempty"`
	JoinDate     *string `json:"join_date,omitempty"`
	SupervisorID *int64  `json:"supervisor_id,omitempty"`
}

// Validate checks employee business rules against the employee being updated
func (r *UpdateEmployeeRequest) Validate(employeeID int64) error {
	if blankPtr(r.Name) {
		return errors.New("name cannot be empty")
	}
	if r.Role != nil && !EmployeeRole(*r.Role).IsValid() {
		return errors.New("role must be Agent, Manager, Admin or Support")
	}
	if r.SupervisorID != nil && *r.SupervisorID == employeeID {
		return errors.New("an employee cannot supervise themselves")
	}
	if _, err := ParseOptionalDate("join_date", r.JoinDate); err != nil {
		return err
	}
	return nil
}
