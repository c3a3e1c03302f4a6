package models

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusCompleted BookingStatus = "Completed"
)

// IsValid reports whether the status is a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is allowed
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// CanTransitionTo checks a status change
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	return !s.IsTerminal()
}

// Booking is a reservation made for one or more passengers
type Booking struct {
	ID             int64         `json:"id" db:"id"`
	GroupName      *string       `json:"group_name,omitempty" db:"group_name"`
	Purpose        *string       `json:"purpose,omitempty" db:"purpose"`
	BookingDate    time.Time     `json:"booking_date" db:"booking_date"`
	EmployeeID     *int64        `json:"employee_id,omitempty" db:"employee_id"`
	TotalCost      float64       `json:"total_cost" db:"total_cost"`
	Status         BookingStatus `json:"status" db:"status"`
	AgentName      *string       `json:"agent_name,omitempty" db:"agent_name"`
	PassengerCount int           `json:"passenger_count" db:"passenger_count"`
}

// BookingAccommodation is an accommodation stay attached to a booking
type BookingAccommodation struct {
	ID                int64     `json:"id" db:"id"`
	BookingID         int64     `json:"booking_id" db:"booking_id"`
	AccommodationID   int64     `json:"accommodation_id" db:"accommodation_id"`
	CheckInDate       time.Time `json:"check_in_date" db:"check_in_date"`
	CheckOutDate      time.Time `json:"check_out_date" db:"check_out_date"`
	Cost              float64   `json:"cost" db:"cost"`
	AccommodationName *string   `json:"accommodation_name,omitempty" db:"accommodation_name"`
}

// BookingTransportation is a transportation leg attached to a booking.
// Exactly one of FlightID, CarRentalID, CruiseID is set, matching TransportKind.
type BookingTransportation struct {
	ID              int64         `json:"id" db:"id"`
	BookingID       int64         `json:"booking_id" db:"booking_id"`
	TransportTypeID int64         `json:"transport_type_id" db:"transport_type_id"`
	TransportKind   TransportKind `json:"transport_type" db:"transport_type"`
	FlightID        *int64        `json:"flight_id,omitempty" db:"flight_id"`
	CarRentalID     *int64        `json:"car_rental_id,omitempty" db:"car_rental_id"`
	CruiseID        *int64        `json:"cruise_id,omitempty" db:"cruise_id"`
	Cost            float64       `json:"cost" db:"cost"`
}

// BookingActivity is an activity reserved as part of a booking
type BookingActivity struct {
	BookingID     int64      `json:"booking_id" db:"booking_id"`
	ActivityID    int64      `json:"activity_id" db:"activity_id"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty" db:"scheduled_date"`
	Participants  int        `json:"participants" db:"participants"`
	Cost          float64    `json:"cost" db:"cost"`
	ActivityName  *string    `json:"activity_name,omitempty" db:"activity_name"`
}

// BookingDetail is a booking with all of its legs
type BookingDetail struct {
	Booking
	Passengers      []Passenger             `json:"passengers"`
	Accommodations  []BookingAccommodation  `json:"accommodations"`
	Transportations []BookingTransportation `json:"transportations"`
	Activities      []BookingActivity       `json:"activities"`
}

// CreateBookingRequest represents the request to open a booking
type CreateBookingRequest struct {
	GroupName    *string `json:"group_name,omitempty" binding:"omitempty,max=150"`
	Purpose      *string `json:"purpose,omitempty" binding:"omitempty,max=100"`
	BookingDate  *string `json:"booking_date,omitempty"` // Format: YYYY-MM-DD, defaults to today
	EmployeeID   *int64  `json:"employee_id,omitempty" binding:"omitempty,gt=0"`
	Status       *string `json:"status,omitempty" binding:"omitempty,booking_status"`
	PassengerIDs []int64 `json:"passenger_ids" binding:"required,min=1,dive,gt=0"`
}

// Validate checks the booking request
func (r *CreateBookingRequest) Validate() error {
	seen := make(map[int64]struct{}, len(r.PassengerIDs))
	for _, id := range r.PassengerIDs {
		if _, dup := seen[id]; dup {
			return errors.New("passenger_ids must not contain duplicates")
		}
		seen[id] = struct{}{}
	}
	if r.Status != nil && !BookingStatus(*r.Status).IsValid() {
		return errors.New("invalid booking status")
	}
	if _, err := ParseOptionalDate("booking_date", r.BookingDate); err != nil {
		return err
	}
	return nil
}

// UpdateBookingRequest represents a partial booking update
type UpdateBookingRequest struct {
	GroupName   *string `json:"group_name,omitempty" binding:"omitempty,max=150"`
	Purpose     *string `json:"purpose,omitempty" binding:"omitempty,max=100"`
	BookingDate *string `json:"booking_date,omitempty"`
	EmployeeID  *int64  `json:"employee_id,omitempty" binding:"omitempty,gt=0"`
}

// Validate checks the booking update
func (r *UpdateBookingRequest) Validate() error {
	_, err := ParseOptionalDate("booking_date", r.BookingDate)
	return err
}

// Empty reports whether the update carries no fields
func (r *UpdateBookingRequest) Empty() bool {
	return r.GroupName == nil && r.Purpose == nil && r.BookingDate == nil && r.EmployeeID == nil
}

// UpdateBookingStatusRequest represents a booking status change
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,booking_status"`
}

// AddBookingPassengerRequest adds a passenger to a booking
type AddBookingPassengerRequest struct {
	PassengerID int64 `json:"passenger_id" binding:"required,gt=0"`
}

// AddAccommodationLegRequest adds a stay to a booking.
// Without a cost the stay is priced from the accommodation rate and discount.
type AddAccommodationLegRequest struct {
	AccommodationID int64    `json:"accommodation_id" binding:"required,gt=0"`
	CheckInDate     string   `json:"check_in_date" binding:"required"`  // Format: YYYY-MM-DD
	CheckOutDate    string   `json:"check_out_date" binding:"required"` // Format: YYYY-MM-DD
	Cost            *float64 `json:"cost,omitempty" binding:"omitempty,gte=0"`
}

// Dates parses and checks the stay dates
func (r *AddAccommodationLegRequest) Dates() (checkIn, checkOut time.Time, err error) {
	if checkIn, err = ParseDate("check_in_date", r.CheckInDate); err != nil {
		return
	}
	if checkOut, err = ParseDate("check_out_date", r.CheckOutDate); err != nil {
		return
	}
	if !checkOut.After(checkIn) {
		err = errors.New("check-out must be after check-in")
	}
	return
}

// Nights returns the number of nights between two dates
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// AddTransportationLegRequest adds a flight, car rental or cruise to a booking.
// Without a cost the leg is priced from the referenced fare or rent.
type AddTransportationLegRequest struct {
	Kind        string   `json:"kind" binding:"required"`
	FlightID    *int64   `json:"flight_id,omitempty" binding:"omitempty,gt=0"`
	CarRentalID *int64   `json:"car_rental_id,omitempty" binding:"omitempty,gt=0"`
	CruiseID    *int64   `json:"cruise_id,omitempty" binding:"omitempty,gt=0"`
	Cost        *float64 `json:"cost,omitempty" binding:"omitempty,gte=0"`
}

// Validate checks that exactly the id matching the kind is set
func (r *AddTransportationLegRequest) Validate() error {
	set := 0
	for _, id := range []*int64{r.FlightID, r.CarRentalID, r.CruiseID} {
		if id != nil {
			set++
		}
	}
	if set != 1 {
		return errors.New("exactly one of flight_id, car_rental_id, cruise_id is required")
	}

	switch TransportKind(r.Kind) {
	case TransportKindFlight:
		if r.FlightID == nil {
			return errors.New("flight_id is required for a Flight leg")
		}
	case TransportKindCarRental:
		if r.CarRentalID == nil {
			return errors.New("car_rental_id is required for a Car Rental leg")
		}
	case TransportKindCruise:
		if r.CruiseID == nil {
			return errors.New("cruise_id is required for a Cruise leg")
		}
	default:
		return errors.New("kind must be Flight, Car Rental or Cruise")
	}
	return nil
}

// AddBookingActivityRequest reserves an activity on a booking
type AddBookingActivityRequest struct {
	ActivityID    int64    `json:"activity_id" binding:"required,gt=0"`
	ScheduledDate *string  `json:"scheduled_date,omitempty"` // Format: YYYY-MM-DD
	Participants  int      `json:"participants" binding:"omitempty,gte=1"`
	Cost          *float64 `json:"cost,omitempty" binding:"omitempty,gte=0"`
}

// Validate checks the scheduled date and defaults participants to one
func (r *AddBookingActivityRequest) Validate() error {
	if r.Participants == 0 {
		r.Participants = 1
	}
	_, err := ParseOptionalDate("scheduled_date", r.ScheduledDate)
	return err
}
