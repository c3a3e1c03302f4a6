package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
)

// errNotFound is sql.ErrNoRows; callers test for it with errors.Is
var errNotFound = sql.ErrNoRows

// Postgres error codes surfaced to handlers
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DependentsError is returned when a delete is refused because other rows still reference the entity
type DependentsError struct {
	Entity     string
	Dependents map[string]int
}

func (e *DependentsError) Error() string {
	tables := make([]string, 0, len(e.Dependents))
	for table, count := range e.Dependents {
		tables = append(tables, fmt.Sprintf("%s (%d)", table, count))
	}
	sort.Strings(tables)
	return fmt.Sprintf("cannot delete %s: referenced by %s", e.Entity, strings.Join(tables, ", "))
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key violation
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation
}

// dependent describes one table that may reference the row being deleted
type dependent struct {
	label string
	query string // must select COUNT(*) with a single $1 placeholder
}

// countDependents runs every dependent count and returns a DependentsError when any is non-zero
func countDependents(db DB, entity string, id int64, deps []dependent) error {
	found := make(map[string]int)
	for _, d := range deps {
		var count int
		if err := db.Get(&count, d.query, id); err != nil {
			return fmt.Errorf("failed to check %s dependents: %w", d.label, err)
		}
		if count > 0 {
			found[d.label] += count
		}
	}

	if len(found) > 0 {
		return &DependentsError{Entity: entity, Dependents: found}
	}
	return nil
}

// deleteByID removes one row and returns sql.ErrNoRows when nothing matched
func deleteByID(db DB, table string, id int64) error {
	result, err := db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errNotFound
	}

	return nil
}

// updateSet accumulates "column = $n" fragments for a partial UPDATE
type updateSet struct {
	fields []string
	args   []interface{}
}

func (u *updateSet) add(column string, value interface{}) {
	u.args = append(u.args, value)
	u.fields = append(u.fields, fmt.Sprintf("%s = $%d", column, len(u.args)))
}

func (u *updateSet) empty() bool {
	return len(u.fields) == 0
}

// setIfPresent adds the column only when the request carried a value for it
func setIfPresent[T any](u *updateSet, column string, value *T) {
	if value != nil {
		u.add(column, *value)
	}
}

// exec runs the UPDATE against a single row. With nothing to update it only checks that the row exists.
func (u *updateSet) exec(db DB, table string, id int64) error {
	if u.empty() {
		var exists bool
		if err := db.Get(&exists, fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table), id); err != nil {
			return fmt.Errorf("failed to check %s: %w", table, err)
		}
		if !exists {
			return errNotFound
		}
		return nil
	}

	args := append(u.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(u.fields, ", "), len(args))

	result, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// likePattern turns a free-text search term into an ILIKE pattern
func likePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(term)) + "%"
}
