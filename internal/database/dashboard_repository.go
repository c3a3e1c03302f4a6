package database

import (
	"fmt"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
)

// DashboardRepository gathers the counts shown on the admin dashboard
type DashboardRepository struct {
	db DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// countedTables are the tables reported on the dashboard, keyed by their label
var countedTables = []struct {
	label string
	table string
}{
	{"locations", "locations"},
	{"passengers", "passengers"},
	{"employees", "employees"},
	{"accommodations", "accommodations"},
	{"flights", "flights"},
	{"car_rentals", "car_rentals"},
	{"cruises", "cruises"},
	{"activities", "activities"},
	{"travel_groups", "travel_groups"},
	{"bookings", "bookings"},
	{"payments", "payments"},
	{"reviews", "reviews"},
}

// Counts returns the row count of every reported table
func (r *DashboardRepository) Counts() (map[string]int, error) {
	counts := make(map[string]int, len(countedTables))
	for _, t := range countedTables {
		var count int
		if err := r.db.Get(&count, fmt.Sprintf("SELECT COUNT(*) FROM %s", t.table)); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", t.table, err)
		}
		counts[t.label] = count
	}
	return counts, nil
}

// AvailableAccommodations returns accommodations that can be offered, cheapest first
func (r *DashboardRepository) AvailableAccommodations(limit int) ([]models.Accommodation, error) {
	query := accommodationSelect + ` ORDER BY a.rate * (1 - a.discount), a.id LIMIT $1`

	accommodations := []models.Accommodation{}
	if err := r.db.Select(&accommodations, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list available accommodations: %w", err)
	}
	return accommodations, nil
}

// AvailableFlights returns flights that have not departed yet
func (r *DashboardRepository) AvailableFlights(now time.Time, limit int) ([]models.Flight, error) {
	return NewFlightRepository(r.db).ListUpcoming(now, limit)
}
