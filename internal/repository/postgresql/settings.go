package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, max_clocking_time, auto_clock_out_time, max_late_days,
			late_policy_deduction_per_day, late_policy_leave_type_id,
			company_name, company_address, updated_at
		FROM settings
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var s settings.Settings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.MaxClockingTime, &s.AutoClockOutTime, &s.MaxLateDays,
		&s.LatePolicyDeductionPerDay, &s.LatePolicyLeaveTypeID,
		&s.CompanyName, &s.CompanyAddress, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s, nil
}

// Save implements settings.SettingsRepository.
// The row is created on first save and updated in place afterwards.
func (r *settingsRepositoryImpl) Save(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	address := s.CompanyAddress
	if address == nil {
		address = []string{}
	}

	if s.ID == "" {
		query := `
			INSERT INTO settings (
				max_clocking_time, auto_clock_out_time, max_late_days,
				late_policy_deduction_per_day, late_policy_leave_type_id,
				company_name, company_address
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, updated_at
		`
		err := q.QueryRow(ctx, query,
			s.MaxClockingTime, s.AutoClockOutTime, s.MaxLateDays,
			s.LatePolicyDeductionPerDay, s.LatePolicyLeaveTypeID,
			s.CompanyName, address,
		).Scan(&s.ID, &s.UpdatedAt)
		if err != nil {
			return settings.Settings{}, fmt.Errorf("failed to create settings: %w", err)
		}
		return s, nil
	}

	query := `
		UPDATE settings
		SET max_clocking_time = $2, auto_clock_out_time = $3, max_late_days = $4,
			late_policy_deduction_per_day = $5, late_policy_leave_type_id = $6,
			company_name = $7, company_address = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query,
		s.ID, s.MaxClockingTime, s.AutoClockOutTime, s.MaxLateDays,
		s.LatePolicyDeductionPerDay, s.LatePolicyLeaveTypeID,
		s.CompanyName, address,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}

	return s, nil
}
