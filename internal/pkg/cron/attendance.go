package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/latepolicy"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"golang.org/x/sync/errgroup"
)

type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	latePolicySvc latepolicy.LatePolicyService
	employeeRepo  employee.EmployeeRepository

	interval    time.Duration
	concurrency int
	loc         *time.Location
	now         func() time.Time

	// lastRun holds the local date a daily job last completed on
	mu      sync.Mutex
	lastRun map[string]time.Time
}

func NewAttendanceJobs(
	attendanceSvc attendance.AttendanceService,
	latePolicySvc latepolicy.LatePolicyService,
	employeeRepo employee.EmployeeRepository,
	interval time.Duration,
	concurrency int,
	loc *time.Location,
	now func() time.Time,
) *AttendanceJobs {
	if now == nil {
		now = time.Now
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		latePolicySvc: latePolicySvc,
		employeeRepo:  employeeRepo,
		interval:      interval,
		concurrency:   concurrency,
		loc:           loc,
		now:           now,
		lastRun:       make(map[string]time.Time),
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_clock_out", j.interval, j.AutoClockOut)
	scheduler.AddJob("mark_absent_employees", j.interval, j.MarkAbsentEmployees)
	scheduler.AddJob("evaluate_late_policy", j.interval, j.EvaluateLatePolicy)
}

func (j *AttendanceJobs) today() time.Time {
	return attendance.DateOf(j.now(), j.loc)
}

func (j *AttendanceJobs) ranToday(name string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	last, ok := j.lastRun[name]
	return ok && last.Equal(j.today())
}

func (j *AttendanceJobs) markRan(name string, day time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lastRun[name] = day
}

// AutoClockOut closes open records once the configured auto clock-out time passed.
func (j *AttendanceJobs) AutoClockOut(ctx context.Context) error {
	closed, err := j.attendanceSvc.AutoClockOut(ctx)
	if errors.Is(err, settings.ErrConfigIncomplete) {
		slog.Debug("Cron: auto clock-out time not configured, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to auto clock-out: %w", err)
	}
	if closed > 0 {
		slog.Info("Cron: Auto clocked-out attendances", "count", closed)
	}
	return nil
}

// MarkAbsentEmployees stores yesterday's classification for every active
// employee without a record. Runs once per local day.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	const name = "mark_absent_employees"
	if j.ranToday(name) {
		return nil
	}

	today := j.today()
	yesterday := today.AddDate(0, 0, -1)
	slog.Info("Cron: Starting mark absent employees job", "date", yesterday.Format("2006-01-02"))

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	var marked, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)
	for _, emp := range employees {
		g.Go(func() error {
			written, err := j.attendanceSvc.MarkDay(gctx, emp.ID, yesterday)
			if err != nil {
				failed.Add(1)
				slog.Error("Cron: Failed to mark attendance",
					"employee_id", emp.ID,
					"date", yesterday.Format("2006-01-02"),
					"error", err)
				return nil
			}
			if written {
				marked.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if failed.Load() == 0 {
		j.markRan(name, today)
	}
	slog.Info("Cron: Marked attendance for elapsed day",
		"date", yesterday.Format("2006-01-02"),
		"marked", marked.Load(),
		"failed", failed.Load())
	return nil
}

// EvaluateLatePolicy evaluates the current month for every active employee,
// and the previous month as well on the first day of a month.
func (j *AttendanceJobs) EvaluateLatePolicy(ctx context.Context) error {
	const name = "evaluate_late_policy"
	if j.ranToday(name) {
		return nil
	}

	today := j.today()
	type period struct {
		year  int
		month time.Month
	}
	periods := []period{{today.Year(), today.Month()}}
	if today.Day() == 1 {
		prev := today.AddDate(0, 0, -1)
		periods = append(periods, period{prev.Year(), prev.Month()})
	}

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	var applied, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)
	for _, emp := range employees {
		g.Go(func() error {
			for _, p := range periods {
				result, err := j.evaluate(gctx, emp.ID, p.year, p.month)
				if err != nil {
					failed.Add(1)
					slog.Error("Cron: Late policy evaluation failed",
						"employee_id", emp.ID,
						"year", p.year,
						"month", int(p.month),
						"error", err)
					continue
				}
				if result.Applied {
					applied.Add(1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if failed.Load() == 0 {
		j.markRan(name, today)
	}
	slog.Info("Cron: Late policy evaluated",
		"employees", len(employees),
		"applied", applied.Load(),
		"failed", failed.Load())
	return nil
}

// evaluate retries once when another evaluation of the same month won the race.
func (j *AttendanceJobs) evaluate(ctx context.Context, employeeID string, year int, month time.Month) (latepolicy.Result, error) {
	result, err := j.latePolicySvc.EvaluateMonth(ctx, employeeID, year, month)
	if errors.Is(err, latepolicy.ErrConcurrentDeduction) {
		return j.latePolicySvc.EvaluateMonth(ctx, employeeID, year, month)
	}
	return result, err
}
