// Package itinerary folds the flat rows of the passenger itinerary join into one
// view per booking.
package itinerary

import "github.com/apraveen001/Travel-Agency-System/internal/models"

// bookingState tracks the leg ids already folded into one booking
type bookingState struct {
	seenAccommodations  map[int64]struct{}
	seenTransportations map[int64]struct{}
}

// Aggregate groups rows by booking id in a single forward pass.
//
// Bookings come out in the order their first row appears, and their attributes are
// taken from that row. Legs are deduplicated per booking by leg id and keep
// first-seen order. A NULL leg id means the row carries no leg of that kind.
// Aggregate never fails and never reorders its input.
func Aggregate(rows []models.FlatItineraryRow) []models.BookingView {
	views := make([]models.BookingView, 0)
	index := make(map[int64]int)
	states := make([]bookingState, 0)

	for i := range rows {
		row := &rows[i]

		pos, ok := index[row.BookingID]
		if !ok {
			pos = len(views)
			index[row.BookingID] = pos
			views = append(views, newBookingView(row))
			states = append(states, bookingState{
				seenAccommodations:  make(map[int64]struct{}),
				seenTransportations: make(map[int64]struct{}),
			})
		}
		state := &states[pos]
		view := &views[pos]

		if id := row.BookingAccommodationID; id != nil {
			if _, seen := state.seenAccommodations[*id]; !seen {
				state.seenAccommodations[*id] = struct{}{}
				view.Accommodations = append(view.Accommodations, accommodationStay(*id, row))
			}
		}

		if id := row.BookingTransportationID; id != nil {
			if _, seen := state.seenTransportations[*id]; !seen {
				state.seenTransportations[*id] = struct{}{}
				view.Transportations = append(view.Transportations, transportLeg(*id, row))
			}
		}
	}

	return views
}

func newBookingView(row *models.FlatItineraryRow) models.BookingView {
	return models.BookingView{
		BookingID:       row.BookingID,
		GroupName:       row.GroupName,
		Purpose:         row.Purpose,
		BookingDate:     row.BookingDate,
		TotalCost:       row.TotalCost,
		Status:          row.Status,
		AgentName:       row.AgentName,
		Accommodations:  []models.AccommodationStay{},
		Transportations: []models.TransportLeg{},
	}
}

func accommodationStay(id int64, row *models.FlatItineraryRow) models.AccommodationStay {
	return models.AccommodationStay{
		BookingAccommodationID: id,
		Name:                   row.AccommodationName,
		Type:                   row.AccommodationType,
		City:                   row.AccommodationCity,
		Country:                row.AccommodationCountry,
		CheckInDate:            row.CheckInDate,
		CheckOutDate:           row.CheckOutDate,
		Cost:                   row.AccommodationCost,
	}
}

// transportLeg fills only the segment selected by the transport type, and only when its catalogue id is set
func transportLeg(id int64, row *models.FlatItineraryRow) models.TransportLeg {
	leg := models.TransportLeg{
		BookingTransportationID: id,
		Cost:                    row.TransportCost,
	}
	if row.TransportType != nil {
		leg.Kind = models.TransportKind(*row.TransportType)
	}

	switch leg.Kind {
	case models.TransportKindFlight:
		if row.FlightID == nil {
			break
		}
		leg.Flight = &models.FlightSegment{
			FlightID:     row.FlightID,
			FlightNumber: row.FlightNumber,
			Carrier:      row.Carrier,
			Departure:    row.DepartureDateTime,
			Arrival:      row.ArrivalDateTime,
			Class:        row.FlightClass,
			Fare:         row.FlightFare,
			From:         models.Place{City: row.FlightSourceCity, Country: row.FlightSourceCountry},
			To:           models.Place{City: row.FlightDestCity, Country: row.FlightDestCountry},
		}
	case models.TransportKindCarRental:
		if row.CarRentalID == nil {
			break
		}
		leg.CarRental = &models.CarRentalSegment{
			CarRentalID: row.CarRentalID,
			Company:     row.RentalCompany,
			CarType:     row.CarType,
			Pickup:      row.PickupDateTime,
			Dropoff:     row.DropoffDateTime,
			Rent:        row.Rent,
			PickupAt:    models.Place{City: row.PickupCity, Country: row.PickupCountry},
			DropoffAt:   models.Place{City: row.DropoffCity, Country: row.DropoffCountry},
		}
	case models.TransportKindCruise:
		if row.CruiseID == nil {
			break
		}
		leg.Cruise = &models.CruiseSegment{
			CruiseID:      row.CruiseID,
			Name:          row.CruiseName,
			Line:          row.CruiseLine,
			DepartureDate: row.CruiseDepartureDate,
			ReturnDate:    row.CruiseReturnDate,
			Fare:          row.CruiseFare,
			From:          models.Place{City: row.CruiseSourceCity, Country: row.CruiseSourceCountry},
			To:            models.Place{City: row.CruiseDestCity, Country: row.CruiseDestCountry},
		}
	}

	return leg
}
