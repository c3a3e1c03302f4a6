package database

import (
	"fmt"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// EmployeeRepository handles employee database operations
type EmployeeRepository struct {
	db DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeSelect = `
	SELECT e.id, e.name, e.role, e.join_date, e.supervisor_id, s.name AS supervisor_name
	FROM employees e
	LEFT JOIN employees s ON s.id = e.supervisor_id
`

// List returns employees with their supervisor's name
func (r *EmployeeRepository) List(params models.ListParams) ([]models.Employee, error) {
	query := employeeSelect + `
		WHERE ($1 = '' OR e.name ILIKE $2 OR e.role ILIKE $2)
		ORDER BY e.name, e.id
		LIMIT $3 OFFSET $4
	`

	employees := []models.Employee{}
	if err := r.db.Select(&employees, query, params.Query, likePattern(params.Query), params.Limit, params.Offset); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(id int64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Get(&employee, employeeSelect+` WHERE e.id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return &employee, nil
}

// Create inserts a new employee
func (r *EmployeeRepository) Create(req *models.CreateEmployeeRequest) (*models.Employee, error) {
	joinDate := Today()
	if parsed, err := models.ParseOptionalDate("join_date", req.JoinDate); err != nil {
		return nil, err
	} else if parsed != nil {
		joinDate = *parsed
	}

	employee := &models.Employee{
		Name:         req.Name,
		Role:         models.EmployeeRole(req.Role),
		JoinDate:     joinDate,
		SupervisorID: req.SupervisorID,
	}

	query := `
		INSERT INTO employees (name, role, join_date, supervisor_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(query, employee.Name, employee.Role, employee.JoinDate, employee.SupervisorID).
		Scan(&employee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

// Update applies a partial update to an employee
func (r *EmployeeRepository) Update(id int64, req *models.UpdateEmployeeRequest) error {
	set := &updateSet{}
	setIfPresent(set, "name", req.Name)
	setIfPresent(set, "role", req.Role)
	setIfPresent(set, "supervisor_id", req.SupervisorID)

	joinDate, err := models.ParseOptionalDate("join_date", req.JoinDate)
	if err != nil {
		return err
	}
	setIfPresent(set, "join_date", joinDate)

	return set.exec(r.db, "employees", id)
}

// Delete removes an employee who supervises nobody and handles no bookings
func (r *EmployeeRepository) Delete(id int64) error {
	err := countDependents(r.db, "employee", id, []dependent{
		{"subordinates", `SELECT COUNT(*) FROM employees WHERE supervisor_id = $1`},
		{"bookings", `SELECT COUNT(*) FROM bookings WHERE employee_id = $1`},
	})
	if err != nil {
		return err
	}

	return deleteByID(r.db, "employees", id)
}
