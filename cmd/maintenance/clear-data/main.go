package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/apraveen001/Travel-Agency-System/internal/config"
	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/joho/godotenv"
)

// Agency data in dependency order. Admin users, sessions and audit logs are kept.
var tables = []string{
	"reviews",
	"payments",
	"booking_activities",
	"booking_transportations",
	"booking_accommodations",
	"booking_passengers",
	"bookings",
	"group_members",
	"travel_groups",
	"activities",
	"cruises",
	"car_rentals",
	"flights",
	"accommodations",
	"employees",
	"passengers",
	"locations",
}

func main() {
	var (
		dbURLFlag string
		confirm   bool
	)
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.BoolVar(&confirm, "confirm", false, "actually truncate the tables")
	flag.Parse()

	// .env is optional; it keeps secrets off the command line
	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	db, err := database.NewConnection(config.DatabaseConfig{
		URL:                dbURL,
		MaxConnections:     2,
		MaxIdleConnections: 1,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	printCounts(db, "Current row counts:")

	if !confirm {
		fmt.Println("Dry run. Pass -confirm to delete all agency data.")
		return
	}

	query := "TRUNCATE TABLE "
	for i, t := range tables {
		if i > 0 {
			query += ", "
		}
		query += t
	}
	query += " RESTART IDENTITY CASCADE"

	if _, err := db.Exec(query); err != nil {
		log.Fatalf("failed to truncate tables: %v", err)
	}

	fmt.Println("All agency data cleared (tables truncated, identities reset).")
	printCounts(db, "Post-clear row counts:")
}

func printCounts(db database.DB, title string) {
	fmt.Println(title)
	for _, t := range tables {
		var count int
		if err := db.Get(&count, fmt.Sprintf("SELECT COUNT(*) FROM %s", t)); err != nil {
			fmt.Printf("  %s: error: %v\n", t, err)
			continue
		}
		fmt.Printf("  %s: %d\n", t, count)
	}
}
