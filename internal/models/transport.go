package models

import (
	"errors"
	"time"
)

// TransportKind names a row of transportation_types. The values are the stored names.
type TransportKind string

const (
	TransportKindFlight    TransportKind = "Flight"
	TransportKindCarRental TransportKind = "Car Rental"
	TransportKindBus       TransportKind = "Bus"
	TransportKindCruise    TransportKind = "Cruise"
)

// Flight is a scheduled flight that booking legs can reference
type Flight struct {
	ID                int64     `json:"id" db:"id"`
	FlightNumber      string    `json:"flight_number" db:"flight_number"`
	Carrier           string    `json:"carrier" db:"carrier"`
	SourceLocationID  int64     `json:"source_location_id" db:"source_location_id"`
	DestLocationID    int64     `json:"dest_location_id" db:"dest_location_id"`
	DepartureDateTime time.Time `json:"departure_datetime" db:"departure_datetime"`
	ArrivalDateTime   time.Time `json:"arrival_datetime" db:"arrival_datetime"`
	Class             string    `json:"class" db:"class"`
	Fare              float64   `json:"fare" db:"fare"`
	SourceCity        *string   `json:"source_city,omitempty" db:"source_city"`
	DestCity          *string   `json:"dest_city,omitempty" db:"dest_city"`
}

// CreateFlightRequest represents the request to add a flight
type CreateFlightRequest struct {
	FlightNumber      string    `json:"flight_number" binding:"required,max=20"`
	Carrier           string    `json:"carrier" binding:"required,max=100"`
	SourceLocationID  int64     `json:"source_location_id" binding:"required,gt=0"`
	DestLocationID    int64     `json:"dest_location_id" binding:"required,gt=0"`
	DepartureDateTime time.Time `json:"departure_datetime" binding:"required"`
	ArrivalDateTime   time.Time `json:"arrival_datetime" binding:"required"`
	Class             string    `json:"class" binding:"required,oneof=Economy 'Premium Economy' Business First"`
	Fare              float64   `json:"fare" binding:"gte=0"`
}

// Validate checks the flight schedule
func (r *CreateFlightRequest) Validate() error {
	if r.SourceLocationID == r.DestLocationID {
		return errors.New("source and destination must differ")
	}
	if !r.ArrivalDateTime.After(r.DepartureDateTime) {
		return errors.New("arrival must be after departure")
	}
	return nil
}

// UpdateFlightRequest represents a partial flight update. Schedule checks that
// need the stored row are done by the repository caller.
type UpdateFlightRequest struct {
	FlightNumber      *string    `json:"flight_number,omitempty" binding:"omitempty,max=20"`
	Carrier           *string    `json:"carrier,omitempty" binding:"omitempty,max=100"`
	SourceLocationID  *int64     `json:"source_location_id,omitempty" binding:"omitempty,gt=0"`
	DestLocationID    *int64     `json:"dest_location_id,omitempty" binding:"omitempty,gt=0"`
	DepartureDateTime *time.Time `json:"departure_datetime,omitempty"`
	ArrivalDateTime   *time.Time `json:"arrival_datetime,omitempty"`
	Class             *string    `json:"class,omitempty" binding:"omitempty,oneof=Economy 'Premium Economy' Business First"`
	Fare              *float64   `json:"fare,omitempty" binding:"omitempty,gte=0"`
}

// Apply merges the update into a copy of the stored flight
func (r *UpdateFlightRequest) Apply(f Flight) Flight {
	if r.FlightNumber != nil {
		f.FlightNumber = *r.FlightNumber
	}
	if r.Carrier != nil {
		f.Carrier = *r.Carrier
	}
	if r.SourceLocationID != nil {
		f.SourceLocationID = *r.SourceLocationID
	}
	if r.DestLocationID != nil {
		f.DestLocationID = *r.DestLocationID
	}
	if r.DepartureDateTime != nil {
		f.DepartureDateTime = *r.DepartureDateTime
	}
	if r.ArrivalDateTime != nil {
		f.ArrivalDateTime = *r.ArrivalDateTime
	}
	if r.Class != nil {
		f.Class = *r.Class
	}
	if r.Fare != nil {
		f.Fare = *r.Fare
	}
	return f
}

// CarRental is a rental car offer that booking legs can reference
type CarRental struct {
	ID                int64     `json:"id" db:"id"`
	Company           string    `json:"company" db:"company"`
	CarType           string    `json:"car_type" db:"car_type"`
	PickupLocationID  int64     `json:"pickup_location_id" db:"pickup_location_id"`
	DropoffLocationID int64     `json:"dropoff_location_id" db:"dropoff_location_id"`
	PickupDateTime    time.Time `json:"pickup_datetime" db:"pickup_datetime"`
	DropoffDateTime   time.Time `json:"dropoff_datetime" db:"dropoff_datetime"`
	Rent              float64   `json:"rent" db:"rent"`
	PickupCity        *string   `json:"pickup_city,omitempty" db:"pickup_city"`
	DropoffCity       *string   `json:"dropoff_city,omitempty" db:"dropoff_city"`
}

// CreateCarRentalRequest represents the request to add a car rental
type CreateCarRentalRequest struct {
	Company           string    `json:"company" binding:"required,max=100"`
	CarType           string    `json:"car_type" binding:"required,max=50"`
	PickupLocationID  int64     `json:"pickup_location_id" binding:"required,gt=0"`
	DropoffLocationID int64     `json:"dropoff_location_id" binding:"required,gt=0"`
	PickupDateTime    time.Time `json:"pickup_datetime" binding:"required"`
	DropoffDateTime   time.Time `json:"dropoff_datetime" binding:"required"`
	Rent              float64   `json:"rent" binding:"gte=0"`
}

// Validate checks the rental period
func (r *CreateCarRentalRequest) Validate() error {
	if !r.DropoffDateTime.After(r.PickupDateTime) {
		return errors.New("dropoff must be after pickup")
	}
	return nil
}

// UpdateCarRentalRequest represents a partial car rental update
type UpdateCarRentalRequest struct {
	Company           *string    `json:"company,omitempty" binding:"omitempty,max=100"`
	CarType           *string    `json:"car_type,omitempty" binding:"omitempty,max=50"`
	PickupLocationID  *int64     `json:"pickup_location_id,omitempty" binding:"omitempty,gt=0"`
	DropoffLocationID *int64     `json:"dropoff_location_id,omitempty" binding:"omitempty,gt=0"`
	PickupDateTime    *time.Time `json:"pickup_datetime,omitempty"`
	DropoffDateTime   *time.Time `json:"dropoff_datetime,omitempty"`
	Rent              *float64   `json:"rent,omitempty" binding:"omitempty,gte=0"`
}

// Apply merges the update into a copy of the stored rental
func (r *UpdateCarRentalRequest) Apply(c CarRental) CarRental {
	if r.Company != nil {
		c.Company = *r.Company
	}
	if r.CarType != nil {
		c.CarType = *r.CarType
	}
	if r.PickupLocationID != nil {
		c.PickupLocationID = *r.PickupLocationID
	}
	if r.DropoffLocationID != nil {
		c.DropoffLocationID = *r.DropoffLocationID
	}
	if r.PickupDateTime != nil {
		c.PickupDateTime = *r.PickupDateTime
	}
	if r.DropoffDateTime != nil {
		c.DropoffDateTime = *r.DropoffDateTime
	}
	if r.Rent != nil {
		c.Rent = *r.Rent
	}
	return c
}

// Cruise is a sailing that booking legs can reference
type Cruise struct {
	ID               int64     `json:"id" db:"id"`
	CruiseName       string    `json:"cruise_name" db:"cruise_name"`
	Line             string    `json:"line" db:"line"`
	SourceLocationID int64     `json:"source_location_id" db:"source_location_id"`
	DestLocationID   int64     `json:"dest_location_id" db:"dest_location_id"`
	DepartureDate    time.Time `json:"departure_date" db:"departure_date"`
	ReturnDate       time.Time `json:"return_date" db:"return_date"`
	Fare             float64   `json:"fare" db:"fare"`
	SourceCity       *string   `json:"source_city,omitempty" db:"source_city"`
	DestCity         *string   `json:"dest_city,omitempty" db:"dest_city"`
}

// CreateCruiseRequest represents the request to add a cruise
type CreateCruiseRequest struct {
	CruiseName       string  `json:"cruise_name" binding:"required,max=150"`
	Line             string  `json:"line" binding:"required,max=100"`
	SourceLocationID int64   `json:"source_location_id" binding:"required,gt=0"`
	DestLocationID   int64   `json:"dest_location_id" binding:"required,gt=0"`
	DepartureDate    string  `json:"departure_date" binding:"required"` // Format: YYYY-MM-DD
	ReturnDate       string  `json:"return_date" binding:"required"`    // Format: YYYY-MM-DD
	Fare             float64 `json:"fare" binding:"gte=0"`
}

// Validate checks the sailing dates
func (r *CreateCruiseRequest) Validate() error {
	if r.SourceLocationID == r.DestLocationID {
		return errors.New("source and destination must differ")
	}
	_, _, err := r.Dates()
	return err
}

// Dates parses and checks the sailing dates
func (r *CreateCruiseRequest) Dates() (departure, ret time.Time, err error) {
	if departure, err = ParseDate("departure_date", r.DepartureDate); err != nil {
		return
	}
	if ret, err = ParseDate("return_date", r.ReturnDate); err != nil {
		return
	}
	if ret.Before(departure) {
		err = errors.New("return date cannot be before departure date")
	}
	return
}

// UpdateCruiseRequest represents a partial cruise update
type UpdateCruiseRequest struct {
	CruiseName       *string  `json:"cruise_name,omitempty" binding:"omitempty,max=150"`
	Line             *string  `json:"line,omitempty" binding:"omitempty,max=100"`
	SourceLocationID *int64   `json:"source_location_id,omitempty" binding:"omitempty,gt=0"`
	DestLocationID   *int64   `json:"dest_location_id,omitempty" binding:"omitempty,gt=0"`
	DepartureDate    *string  `json:"departure_date,omitempty"`
	ReturnDate       *string  `json:"return_date,omitempty"`
	Fare             *float64 `json:"fare,omitempty" binding:"omitempty,gte=0"`
}

// Apply merges the update into a copy of the stored cruise
func (r *UpdateCruiseRequest) Apply(c Cruise) (Cruise, error) {
	if r.CruiseName != nil {
		c.CruiseName = *r.CruiseName
	}
	if r.Line != nil {
		c.Line = *r.Line
	}
	if r.SourceLocationID != nil {
		c.SourceLocationID = *r.SourceLocationID
	}
	if r.DestLocationID != nil {
		c.DestLocationID = *r.DestLocationID
	}
	if r.Fare != nil {
		c.Fare = *r.Fare
	}
	departure, err := ParseOptionalDate("departure_date", r.DepartureDate)
	if err != nil {
		return c, err
	}
	if departure != nil {
		c.DepartureDate = *departure
	}
	ret, err := ParseOptionalDate("return_date", r.ReturnDate)
	if err != nil {
		return c, err
	}
	if ret != nil {
		c.ReturnDate = *ret
	}
	if c.ReturnDate.Before(c.DepartureDate) {
		return c, errors.New("return date cannot be before departure date")
	}
	return c, nil
}

// Validate checks a merged flight before it is written
func (f Flight) Validate() error {
	if f.SourceLocationID == f.DestLocationID {
		return errors.New("source and destination must differ")
	}
	if !f.ArrivalDateTime.After(f.DepartureDateTime) {
		return errors.New("arrival must be after departure")
	}
	return nil
}

// Validate checks a merged car rental before it is written
func (c CarRental) Validate() error {
	if !c.DropoffDateTime.After(c.PickupDateTime) {
		return errors.New("dropoff must be after pickup")
	}
	return nil
}
