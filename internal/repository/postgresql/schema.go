package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	email         TEXT NOT NULL UNIQUE,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL DEFAULT 'employee' CHECK (role IN ('admin', 'hr', 'employee')),
	password_hash TEXT,
	week_off_day  SMALLINT CHECK (week_off_day BETWEEN 0 AND 6),
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS leave_types (
	id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name         TEXT NOT NULL,
	description  TEXT,
	default_days NUMERIC(6,2) NOT NULL DEFAULT 0,
	is_active    BOOLEAN NOT NULL DEFAULT TRUE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS leave_balances (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	employee_id   UUID NOT NULL REFERENCES employees(id),
	leave_type_id UUID NOT NULL REFERENCES leave_types(id),
	year          INT NOT NULL,
	total_days    NUMERIC(6,2) NOT NULL DEFAULT 0,
	used_days     NUMERIC(6,2) NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (employee_id, leave_type_id, year)
);

CREATE TABLE IF NOT EXISTS leave_requests (
	id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	employee_id     UUID NOT NULL REFERENCES employees(id),
	leave_type_id   UUID NOT NULL REFERENCES leave_types(id),
	start_date      DATE NOT NULL,
	end_date        DATE NOT NULL,
	reason          TEXT,
	status          TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
	reviewed_by     UUID REFERENCES employees(id),
	reviewed_at     TIMESTAMPTZ,
	half_day        BOOLEAN NOT NULL DEFAULT FALSE,
	half_day_period TEXT CHECK (half_day_period IN ('first_half', 'second_half')),
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CHECK (end_date >= start_date)
);

CREATE INDEX IF NOT EXISTS idx_leave_requests_employee_range
	ON leave_requests (employee_id, start_date, end_date) WHERE status = 'approved';

CREATE TABLE IF NOT EXISTS attendance (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	employee_id UUID NOT NULL REFERENCES employees(id),
	date        DATE NOT NULL,
	clock_in    TIMESTAMPTZ,
	clock_out   TIMESTAMPTZ,
	total_hours NUMERIC(5,1),
	status      TEXT NOT NULL CHECK (status IN ('present', 'late', 'absent', 'leave', 'week_off')),
	notes       TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (employee_id, date)
);

CREATE TABLE IF NOT EXISTS settings (
	id                            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	max_clocking_time             TEXT NOT NULL DEFAULT '',
	auto_clock_out_time           TEXT NOT NULL DEFAULT '',
	max_late_days                 INT NOT NULL DEFAULT 3,
	late_policy_deduction_per_day NUMERIC(4,2) NOT NULL DEFAULT 0.5,
	late_policy_leave_type_id     UUID REFERENCES leave_types(id),
	company_name                  TEXT NOT NULL DEFAULT '',
	company_address               JSONB NOT NULL DEFAULT '[]',
	updated_at                    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS late_deduction_logs (
	id                       UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	employee_id              UUID NOT NULL REFERENCES employees(id),
	year                     INT NOT NULL,
	month                    INT NOT NULL CHECK (month BETWEEN 1 AND 12),
	last_deducted_late_count INT NOT NULL DEFAULT 0,
	total_deducted           NUMERIC(6,2) NOT NULL DEFAULT 0,
	leave_type_id            UUID REFERENCES leave_types(id),
	updated_at               TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (employee_id, year, month)
);
`

// Migrate creates the tables used by the attendance engine when missing.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
