package models

import "time"

// FlatItineraryRow is one row of the passenger itinerary join: a booking with at most
// one accommodation stay and at most one transportation leg. Leg columns are NULL when
// the booking has no leg of that kind.
type FlatItineraryRow struct {
	BookingID   int64      `db:"booking_id"`
	GroupName   *string    `db:"group_name"`
	Purpose     *string    `db:"purpose"`
	BookingDate *time.Time `db:"booking_date"`
	TotalCost   *float64   `db:"total_cost"`
	Status      *string    `db:"status"`
	AgentName   *string    `db:"agent_name"`

	BookingAccommodationID *int64     `db:"booking_accommodation_id"`
	CheckInDate            *time.Time `db:"check_in_date"`
	CheckOutDate           *time.Time `db:"check_out_date"`
	AccommodationCost      *float64   `db:"accommodation_cost"`
	AccommodationName      *string    `db:"accommodation_name"`
	AccommodationType      *string    `db:"accommodation_type"`
	AccommodationCity      *string    `db:"accommodation_city"`
	AccommodationCountry   *string    `db:"accommodation_country"`

	BookingTransportationID *int64   `db:"booking_transportation_id"`
	TransportCost           *float64 `db:"transport_cost"`
	TransportType           *string  `db:"transport_type"`

	FlightID            *int64     `db:"flight_id"`
	FlightNumber        *string    `db:"flight_number"`
	Carrier             *string    `db:"carrier"`
	DepartureDateTime   *time.Time `db:"departure_datetime"`
	ArrivalDateTime     *time.Time `db:"arrival_datetime"`
	FlightClass         *string    `db:"flight_class"`
	FlightFare          *float64   `db:"flight_fare"`
	FlightSourceCity    *string    `db:"flight_source_city"`
	FlightSourceCountry *string    `db:"flight_source_country"`
	FlightDestCity      *string    `db:"flight_dest_city"`
	FlightDestCountry   *string    `db:"flight_dest_country"`

	CarRentalID     *int64     `db:"car_rental_id"`
	RentalCompany   *string    `db:"rental_company"`
	CarType         *string    `db:"car_type"`
	PickupDateTime  *time.Time `db:"pickup_datetime"`
	DropoffDateTime *time.Time `db:"dropoff_datetime"`
	Rent            *float64   `db:"rent"`
	PickupCity      *string    `db:"pickup_city"`
	PickupCountry   *string    `db:"pickup_country"`
	DropoffCity     *string    `db:"dropoff_city"`
	DropoffCountry  *string    `db:"dropoff_country"`

	CruiseID            *int64     `db:"cruise_id"`
	CruiseName          *string    `db:"cruise_name"`
	CruiseLine          *string    `db:"cruise_line"`
	CruiseDepartureDate *time.Time `db:"cruise_departure_date"`
	CruiseReturnDate    *time.Time `db:"cruise_return_date"`
	CruiseFare          *float64   `db:"cruise_fare"`
	CruiseSourceCity    *string    `db:"cruise_source_city"`
	CruiseSourceCountry *string    `db:"cruise_source_country"`
	CruiseDestCity      *string    `db:"cruise_dest_city"`
	CruiseDestCountry   *string    `db:"cruise_dest_country"`
}

// BookingView is one booking of an itinerary with its distinct legs
type BookingView struct {
	BookingID       int64               `json:"booking_id"`
	GroupName       *string             `json:"group_name,omitempty"`
	Purpose         *string             `json:"purpose,omitempty"`
	BookingDate     *time.Time          `json:"booking_date,omitempty"`
	TotalCost       *float64            `json:"total_cost,omitempty"`
	Status          *string             `json:"status,omitempty"`
	AgentName       *string             `json:"agent_name,omitempty"`
	Accommodations  []AccommodationStay `json:"accommodations"`
	Transportations []TransportLeg      `json:"transportations"`
}

// AccommodationStay is an accommodation leg in a BookingView
type AccommodationStay struct {
	BookingAccommodationID int64      `json:"booking_accommodation_id"`
	Name                   *string    `json:"name,omitempty"`
	Type                   *string    `json:"type,omitempty"`
	City                   *string    `json:"city,omitempty"`
	Country                *string    `json:"country,omitempty"`
	CheckInDate            *time.Time `json:"check_in_date,omitempty"`
	CheckOutDate           *time.Time `json:"check_out_date,omitempty"`
	Cost                   *float64   `json:"cost,omitempty"`
}

// TransportLeg is a transportation leg in a BookingView. Kind selects which one of
// Flight, CarRental or Cruise is set. An unrecognised kind carries no payload.
type TransportLeg struct {
	BookingTransportationID int64             `json:"booking_transportation_id"`
	Kind                    TransportKind     `json:"kind"`
	Cost                    *float64          `json:"cost,omitempty"`
	Flight                  *FlightSegment    `json:"flight,omitempty"`
	CarRental               *CarRentalSegment `json:"car_rental,omitempty"`
	Cruise                  *CruiseSegment    `json:"cruise,omitempty"`
}

// Place is a city and country pair
type Place struct {
	City    *string `json:"city,omitempty"`
	Country *string `json:"country,omitempty"`
}

// FlightSegment holds the flight attributes of a transport leg
type FlightSegment struct {
	FlightID     *int64     `json:"flight_id,omitempty"`
	FlightNumber *string    `json:"flight_number,omitempty"`
	Carrier      *string    `json:"carrier,omitempty"`
	Departure    *time.Time `json:"departure,omitempty"`
	Arrival      *time.Time `json:"arrival,omitempty"`
	Class        *string    `json:"class,omitempty"`
	Fare         *float64   `json:"fare,omitempty"`
	From         Place      `json:"from"`
	To           Place      `json:"to"`
}

// CarRentalSegment holds the car rental attributes of a transport leg
type CarRentalSegment struct {
	CarRentalID *int64     `json:"car_rental_id,omitempty"`
	Company     *string    `json:"company,omitempty"`
	CarType     *string    `json:"car_type,omitempty"`
	Pickup      *time.Time `json:"pickup,omitempty"`
	Dropoff     *time.Time `json:"dropoff,omitempty"`
	Rent        *float64   `json:"rent,omitempty"`
	PickupAt    Place      `json:"pickup_location"`
	DropoffAt   Place      `json:"dropoff_location"`
}

// CruiseSegment holds the cruise attributes of a transport leg
type CruiseSegment struct {
	CruiseID      *int64     `json:"cruise_id,omitempty"`
	Name          *string    `json:"name,omitempty"`
	Line          *string    `json:"line,omitempty"`
	DepartureDate *time.Time `json:"departure_date,omitempty"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	Fare          *float64   `json:"fare,omitempty"`
	From          Place      `json:"from"`
	To            Place      `json:"to"`
}

// PassengerItinerary is the response of the itinerary endpoint
type PassengerItinerary struct {
	Passenger   Passenger     `json:"passenger"`
	Bookings    []BookingView `json:"bookings"`
	GeneratedAt time.Time     `json:"generated_at"`
}
