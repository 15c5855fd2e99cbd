package sqlite

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE COLLATE NOCASE,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL DEFAULT 'employee' CHECK (role IN ('admin', 'hr', 'employee')),
	password_hash TEXT,
	week_off_day  INTEGER CHECK (week_off_day BETWEEN 0 AND 6),
	is_active     INTEGER NOT NULL DEFAULT 1,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS leave_types (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	description  TEXT,
	default_days TEXT NOT NULL DEFAULT '0',
	is_active    INTEGER NOT NULL DEFAULT 1,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS leave_balances (
	id            TEXT PRIMARY KEY,
	employee_id   TEXT NOT NULL REFERENCES employees(id),
	leave_type_id TEXT NOT NULL REFERENCES leave_types(id),
	year          INTEGER NOT NULL,
	total_days    TEXT NOT NULL DEFAULT '0',
	used_days     TEXT NOT NULL DEFAULT '0',
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL,
	UNIQUE (employee_id, leave_type_id, year)
);

CREATE TABLE IF NOT EXISTS leave_requests (
	id              TEXT PRIMARY KEY,
	employee_id     TEXT NOT NULL REFERENCES employees(id),
	leave_type_id   TEXT NOT NULL REFERENCES leave_types(id),
	start_date      TEXT NOT NULL,
	end_date        TEXT NOT NULL,
	reason          TEXT,
	status          TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
	reviewed_by     TEXT REFERENCES employees(id),
	reviewed_at     TEXT,
	half_day        INTEGER NOT NULL DEFAULT 0,
	half_day_period TEXT CHECK (half_day_period IN ('first_half', 'second_half')),
	created_at      TEXT NOT NULL,
	updated_at      TEXT NOT NULL,
	CHECK (end_date >= start_date)
);

CREATE INDEX IF NOT EXISTS idx_leave_requests_employee_range
	ON leave_requests (employee_id, start_date, end_date) WHERE status = 'approved';

CREATE TABLE IF NOT EXISTS attendance (
	id          TEXT PRIMARY KEY,
	employee_id TEXT NOT NULL REFERENCES employees(id),
	date        TEXT NOT NULL,
	clock_in    TEXT,
	clock_out   TEXT,
	total_hours TEXT,
	status      TEXT NOT NULL CHECK (status IN ('present', 'late', 'absent', 'leave', 'week_off')),
	notes       TEXT,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	UNIQUE (employee_id, date)
);

CREATE TABLE IF NOT EXISTS settings (
	id                            TEXT PRIMARY KEY,
	max_clocking_time             TEXT NOT NULL DEFAULT '',
	auto_clock_out_time           TEXT NOT NULL DEFAULT '',
	max_late_days                 INTEGER NOT NULL DEFAULT 3,
	late_policy_deduction_per_day TEXT NOT NULL DEFAULT '0.5',
	late_policy_leave_type_id     TEXT REFERENCES leave_types(id),
	company_name                  TEXT NOT NULL DEFAULT '',
	company_address               TEXT NOT NULL DEFAULT '[]',
	updated_at                    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS late_deduction_logs (
	id                       TEXT PRIMARY KEY,
	employee_id              TEXT NOT NULL REFERENCES employees(id),
	year                     INTEGER NOT NULL,
	month                    INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
	last_deducted_late_count INTEGER NOT NULL DEFAULT 0,
	total_deducted           TEXT NOT NULL DEFAULT '0',
	leave_type_id            TEXT REFERENCES leave_types(id),
	updated_at               TEXT NOT NULL,
	UNIQUE (employee_id, year, month)
);
`

// Migrate creates the tables used by the attendance engine when missing.
func Migrate(ctx context.Context, db *database.SQLiteDB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
