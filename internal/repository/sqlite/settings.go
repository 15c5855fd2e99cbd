package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewSettingsRepository(db *database.SQLiteDB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	var s settings.Settings
	var address, updatedAt string
	err := q.QueryRowContext(ctx, `
		SELECT id, max_clocking_time, auto_clock_out_time, max_late_days,
			late_policy_deduction_per_day, late_policy_leave_type_id,
			company_name, company_address, updated_at
		FROM settings
		ORDER BY updated_at DESC
		LIMIT 1
	`).Scan(
		&s.ID, &s.MaxClockingTime, &s.AutoClockOutTime, &s.MaxLateDays,
		&s.LatePolicyDeductionPerDay, &s.LatePolicyLeaveTypeID,
		&s.CompanyName, &address, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	if err := json.Unmarshal([]byte(address), &s.CompanyAddress); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to decode company address: %w", err)
	}
	if s.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}

// Save implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Save(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	address := s.CompanyAddress
	if address == nil {
		address = []string{}
	}
	encoded, err := json.Marshal(address)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to encode company address: %w", err)
	}

	now := nowTimestamp()
	if s.ID == "" {
		s.ID = newID()
		_, err = q.ExecContext(ctx, `
			INSERT INTO settings (
				id, max_clocking_time, auto_clock_out_time, max_late_days,
				late_policy_deduction_per_day, late_policy_leave_type_id,
				company_name, company_address, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, s.ID, s.MaxClockingTime, s.AutoClockOutTime, s.MaxLateDays,
			s.LatePolicyDeductionPerDay.String(), s.LatePolicyLeaveTypeID,
			s.CompanyName, string(encoded), now)
		if err != nil {
			return settings.Settings{}, fmt.Errorf("failed to create settings: %w", err)
		}
	} else {
		result, err := q.ExecContext(ctx, `
			UPDATE settings
			SET max_clocking_time = ?, auto_clock_out_time = ?, max_late_days = ?,
				late_policy_deduction_per_day = ?, late_policy_leave_type_id = ?,
				company_name = ?, company_address = ?, updated_at = ?
			WHERE id = ?
		`, s.MaxClockingTime, s.AutoClockOutTime, s.MaxLateDays,
			s.LatePolicyDeductionPerDay.String(), s.LatePolicyLeaveTypeID,
			s.CompanyName, string(encoded), now, s.ID)
		if err != nil {
			return settings.Settings{}, fmt.Errorf("failed to update settings: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
	}

	s.CompanyAddress = address
	s.UpdatedAt, _ = parseTimestamp(now)
	return s, nil
}
