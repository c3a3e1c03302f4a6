package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for date-only fields
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", field)
	}
	return t, nil
}

// ParseOptionalDate parses a YYYY-MM-DD string when present
func ParseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func blankPtr(s *string) bool {
	return s != nil && blank(*s)
}

// ListParams holds the common query parameters of list endpoints
type ListParams struct {
	Query  string `form:"q"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// Normalize clamps paging to sane bounds
func (p *ListParams) Normalize() {
	switch {
	case p.Limit <= 0:
		p.Limit = 100
	case p.Limit > 500:
		p.Limit = 500
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	p.Query = strings.TrimSpace(p.Query)
}
