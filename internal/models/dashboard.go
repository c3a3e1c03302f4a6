package models

// DashboardStats summarises the agency's data
type DashboardStats struct {
	Counts           map[string]int `json:"counts"`
	BookingsByStatus map[string]int `json:"bookings_by_status"`
	Revenue          float64        `json:"revenue"`
	PendingPayments  float64        `json:"pending_payments"`
	AverageRating    float64        `json:"average_rating"`
}

// AvailableOptions lists what can currently be booked
type AvailableOptions struct {
	Accommodations []Accommodation `json:"accommodations"`
	Flights        []Flight        `json:"flights"`
}
