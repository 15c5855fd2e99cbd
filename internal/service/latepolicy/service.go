package latepolicy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/latepolicy"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
)

// LateCounter counts the late days of an employee-month.
type LateCounter interface {
	CountLateDays(ctx context.Context, employeeID string, year int, month time.Month) (int, bool, error)
}

type LatePolicyServiceImpl struct {
	db database.Transactor
	latepolicy.LateDeductionLogRepository
	leave.LeaveBalanceRepository
	settings.SettingsRepository
	counter LateCounter
}

func NewLatePolicyService(
	db database.Transactor,
	logRepo latepolicy.LateDeductionLogRepository,
	balanceRepo leave.LeaveBalanceRepository,
	settingsRepo settings.SettingsRepository,
	counter LateCounter,
) latepolicy.LatePolicyService {
	return &LatePolicyServiceImpl{
		db:                         db,
		LateDeductionLogRepository: logRepo,
		LeaveBalanceRepository:     balanceRepo,
		SettingsRepository:         settingsRepo,
		counter:                    counter,
	}
}

// Evaluate implements latepolicy.LatePolicyService.
func (s *LatePolicyServiceImpl) Evaluate(ctx context.Context, in latepolicy.EvaluateInput) (latepolicy.Result, error) {
	if in.EmployeeID == "" || in.Month < time.January || in.Month > time.December || in.LateCount < 0 {
		return latepolicy.Result{}, fmt.Errorf("%w: evaluation of %q for %d-%02d", attendance.ErrInvalidDate, in.EmployeeID, in.Year, int(in.Month))
	}

	cfg, err := s.SettingsRepository.Get(ctx)
	if err != nil && !errors.Is(err, settings.ErrSettingsNotFound) {
		return latepolicy.Result{}, fmt.Errorf("failed to load settings: %w", err)
	}

	result := latepolicy.Result{
		EmployeeID: in.EmployeeID,
		Year:       in.Year,
		Month:      int(in.Month),
		LateCount:  in.LateCount,
	}

	logged, err := s.LateDeductionLogRepository.Get(ctx, in.EmployeeID, in.Year, int(in.Month))
	if err != nil && !errors.Is(err, latepolicy.ErrLogNotFound) {
		return latepolicy.Result{}, fmt.Errorf("failed to get late deduction log: %w", err)
	}

	decision := Compute(in.LateCount, cfg, logged)
	result.Disabled = decision.Disabled
	result.Excess = decision.Excess
	result.Target = decision.Target
	result.Delta = decision.Delta
	result.Shrunk = decision.Shrunk
	result.TotalDeducted = logged.TotalDeducted

	if decision.Disabled {
		return result, nil
	}
	if !decision.Delta.IsPositive() {
		s.warnShrunk(in, decision, logged)
		return result, nil
	}

	leaveTypeID := *cfg.LatePolicyLeaveTypeID
	locked := logged
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		locked, err = s.LateDeductionLogRepository.EnsureForUpdate(ctx, in.EmployeeID, in.Year, int(in.Month), leaveTypeID)
		if err != nil {
			return err
		}

		// another evaluation may have moved the log since the unlocked read
		decision = Compute(in.LateCount, cfg, locked)
		result.Target = decision.Target
		result.Delta = decision.Delta
		result.Shrunk = decision.Shrunk
		result.TotalDeducted = locked.TotalDeducted
		if !decision.Delta.IsPositive() {
			return nil
		}

		balance, err := s.LeaveBalanceRepository.GetByEmployeeTypeYear(ctx, in.EmployeeID, leaveTypeID, in.Year)
		if err != nil {
			if errors.Is(err, leave.ErrLeaveBalanceNotFound) {
				return fmt.Errorf("%w: leave type %s, year %d", latepolicy.ErrUnresolvedLeaveType, leaveTypeID, in.Year)
			}
			return err
		}

		if err := s.LeaveBalanceRepository.IncrementUsedDays(ctx, balance.ID, decision.Delta); err != nil {
			return err
		}
		if err := s.LateDeductionLogRepository.CompareAndSet(ctx, locked.ID, locked.TotalDeducted, decision.Target, in.LateCount, leaveTypeID); err != nil {
			return err
		}

		result.Applied = true
		result.TotalDeducted = decision.Target
		return nil
	})
	if err != nil {
		return latepolicy.Result{}, err
	}

	if result.Applied {
		slog.Info("late policy deduction applied",
			"employee_id", in.EmployeeID,
			"year", in.Year,
			"month", int(in.Month),
			"late_count", in.LateCount,
			"delta", result.Delta.String(),
			"total_deducted", result.TotalDeducted.String(),
		)
	} else {
		s.warnShrunk(in, decision, locked)
	}
	return result, nil
}

func (s *LatePolicyServiceImpl) warnShrunk(in latepolicy.EvaluateInput, d Decision, logged latepolicy.LateDeductionLog) {
	if !d.Shrunk {
		return
	}
	slog.Warn("late count dropped below an applied deduction; not reversed",
		"employee_id", in.EmployeeID,
		"year", in.Year,
		"month", int(in.Month),
		"late_count", in.LateCount,
		"last_deducted_late_count", logged.LastDeductedLateCount,
		"target", d.Target.String(),
		"total_deducted", logged.TotalDeducted.String(),
	)
}

// EvaluateMonth implements latepolicy.LatePolicyService.
func (s *LatePolicyServiceImpl) EvaluateMonth(ctx context.Context, employeeID string, year int, month time.Month) (latepolicy.Result, error) {
	lateCount, incomplete, err := s.counter.CountLateDays(ctx, employeeID, year, month)
	if err != nil {
		return latepolicy.Result{}, fmt.Errorf("failed to count late days: %w", err)
	}

	result, err := s.Evaluate(ctx, latepolicy.EvaluateInput{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		LateCount:  lateCount,
	})
	if err != nil {
		return latepolicy.Result{}, err
	}
	result.ConfigIncomplete = incomplete
	return result, nil
}

// GetLog implements latepolicy.LatePolicyService.
func (s *LatePolicyServiceImpl) GetLog(ctx context.Context, employeeID string, year int, month time.Month) (latepolicy.LogResponse, error) {
	l, err := s.LateDeductionLogRepository.Get(ctx, employeeID, year, int(month))
	if err != nil {
		return latepolicy.LogResponse{}, err
	}
	return latepolicy.NewLogResponse(l), nil
}
