package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/apraveen001/Travel-Agency-System/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const applicationName = "travel-agency"

// DB is the subset of sqlx used by the repositories
type DB interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
	Beginx() (*sqlx.Tx, error)
	Ping() error
	Close() error
}

// PostgresDB satisfies DB through the embedded sqlx handle
type PostgresDB struct {
	*sqlx.DB
}

// NewConnection opens the pool and verifies it with a ping
func NewConnection(cfg config.DatabaseConfig) (DB, error) {
	dsn, err := dataSourceName(cfg.URL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxLifetime / 2)

	return &PostgresDB{DB: db}, nil
}

// dataSourceName adds binary_parameters and application_name to a lib/pq DSN unless already set.
// Both URL and key=value forms are accepted.
func dataSourceName(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("database URL is required")
	}

	defaults := [][2]string{
		// PgBouncer in transaction mode rejects named prepared statements
		{"binary_parameters", "yes"},
		{"application_name", applicationName},
	}

	if !strings.HasPrefix(raw, "postgres://") && !strings.HasPrefix(raw, "postgresql://") {
		dsn := raw
		for _, kv := range defaults {
			if !strings.Contains(dsn, kv[0]+"=") {
				dsn += " " + kv[0] + "=" + kv[1]
			}
		}
		return dsn, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid database URL: %w", err)
	}
	query := u.Query()
	for _, kv := range defaults {
		if query.Get(kv[0]) == "" {
			query.Set(kv[0], kv[1])
		}
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// withTx runs fn inside a transaction, committing only when fn returns nil
func withTx(db DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
