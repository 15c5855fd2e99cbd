package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Calendar dates are stored as "YYYY-MM-DD" and instants as RFC3339 UTC text,
// so ordering by the column orders by time.
const dateLayout = "2006-01-02"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nowTimestamp() string {
	return formatTimestamp(time.Now())
}

func nullTimestamp(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTimestamp(*t)
}

func nullDecimal(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored date %q: %w", s, err)
	}
	return t, nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseNullTimestamp(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTimestamp(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
