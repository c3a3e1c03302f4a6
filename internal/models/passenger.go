package models

import "errors"

// Gender values accepted for passengers
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Passenger represents a traveller
type Passenger struct {
	ID     int64   `json:"id" db:"id"`
	Name   string  `json:"name" db:"name"`
	Gender *string `json:"gender,omitempty" db:"gender"`
	Age    *int    `json:"age,omitempty" db:"age"`
	Email  *string `json:"email,omitempty" db:"email"`
	Phone  *string `json:"phone,omitempty" db:"phone"`
}

// CreatePassengerRequest represents the request to register a passenger
type CreatePassengerRequest struct {
	Name   string  `json:"name" binding:"required,max=100"`
	Gender *string `json:"gender,omitempty"`
	Age    *int    `json:"age,omitempty"`
	Email  *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone  *string `json:"phone,omitempty" binding:"omitempty,intlphone"`
}

// Validate checks passenger business rules
func (r *CreatePassengerRequest) Validate() error {
	if blank(r.Name) {
		return errors.New("name is required")
	}
	return validatePassengerFields(r.Gender, r.Age)
}

// UpdatePassengerRequest represents a partial passenger update
type UpdatePassengerRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Gender *string `json:"gender,omitempty"`
	Age    *int    `json:"age,omitempty"`
	Email  *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone  *string `json:"phone,omitempty" binding:"omitempty,intlphone"`
}

// Validate checks passenger business rules
func (r *UpdatePassengerRequest) Validate() error {
	if blankPtr(r.Name) {
		return errors.New("name cannot be empty")
	}
	return validatePassengerFields(r.Gender, r.Age)
}

func validatePassengerFields(gender *string, age *int) error {
	if age != nil && (*age <= 0 || *age >= 120) {
		return errors.New("age must be between 1 and 119")
	}
	if gender != nil {
		switch *gender {
		case GenderMale, GenderFemale, GenderOther:
		default:
			return errors.New("gender must be Male, Female or Other")
		}
	}
	return nil
}
