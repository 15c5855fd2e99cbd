package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	db database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
	leave.LeaveRequestRepository
	settings.SettingsRepository

	loc *time.Location
	now func() time.Time
}

func NewAttendanceService(
	db database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	settingsRepo settings.SettingsRepository,
	loc *time.Location,
	now func() time.Time,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		db:                     db,
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		LeaveRequestRepository: leaveRequestRepo,
		SettingsRepository:     settingsRepo,
		loc:                    loc,
		now:                    now,
	}
}

// loadSettings treats a missing settings row as empty settings so that
// classification degrades instead of failing.
func (a *AttendanceServiceImpl) loadSettings(ctx context.Context) (settings.Settings, error) {
	s, err := a.SettingsRepository.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.Settings{}, nil
		}
		return settings.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}

func (a *AttendanceServiceImpl) classifyDay(ctx context.Context, emp employee.Employee, date time.Time, record *attendance.Attendance, cfg settings.Settings, now time.Time) (Classification, error) {
	leaves, err := a.LeaveRequestRepository.ListApprovedInRange(ctx, emp.ID, date, date)
	if err != nil {
		return Classification{}, fmt.Errorf("failed to list approved leave: %w", err)
	}
	return Classify(DayInput{
		Employee: emp,
		Date:     date,
		Record:   record,
		Leaves:   leaves,
		Settings: cfg,
		Now:      now,
		Location: a.loc,
	}), nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now()
	today := attendance.DateOf(now, a.loc)

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !emp.IsActive {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeInactive
	}
	if emp.IsWeekOff(today) {
		return attendance.AttendanceResponse{}, attendance.ErrWeekOffClockIn
	}

	cfg, err := a.loadSettings(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var record attendance.Attendance
	var classification Classification
	err = a.db.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
		if err != nil {
			return fmt.Errorf("failed to check existing attendance: %w", err)
		}
		if existing != nil && existing.ClockIn != nil {
			return attendance.ErrAlreadyClockedIn
		}

		clockIn := now
		if existing != nil {
			// a leave approval may have created the row already
			record = *existing
		} else {
			record = attendance.Attendance{EmployeeID: emp.ID, Date: today}
		}
		record.ClockIn = &clockIn
		if req.Notes != nil {
			record.Notes = req.Notes
		}

		classification, err = a.classifyDay(ctx, emp, today, &record, cfg, now)
		if err != nil {
			return err
		}
		record.Status = classification.Status

		if existing != nil {
			return a.AttendanceRepository.Update(ctx, record)
		}
		record, err = a.AttendanceRepository.Create(ctx, record)
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.ErrAlreadyClockedIn
		}
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	name := emp.FullName()
	record.EmployeeName = &name
	resp := attendance.NewAttendanceResponse(record, a.loc)
	resp.ConfigIncomplete = classification.ConfigIncomplete
	return resp, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now()
	today := attendance.DateOf(now, a.loc)

	var record attendance.Attendance
	err := a.db.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		if existing == nil || existing.ClockIn == nil {
			return attendance.ErrNotClockedIn
		}
		if existing.ClockOut != nil {
			return attendance.ErrAlreadyClockedOut
		}

		record = *existing
		clockOut := now
		record.ClockOut = &clockOut
		record.TotalHours = TotalHours(*record.ClockIn, clockOut)
		if req.Notes != nil {
			record.Notes = req.Notes
		}
		return a.AttendanceRepository.Update(ctx, record)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(record, a.loc), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	cfg, err := a.loadSettings(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var record attendance.Attendance
	var classification Classification
	err = a.db.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err = a.AttendanceRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if clockIn := req.ParsedClockIn(); clockIn != nil {
			if !attendance.DateOf(*clockIn, a.loc).Equal(record.Date) {
				return attendance.ErrClockInOutsideOfRecord
			}
			record.ClockIn = clockIn
		}
		if clockOut := req.ParsedClockOut(); clockOut != nil {
			record.ClockOut = clockOut
		}
		if req.Notes != nil {
			record.Notes = req.Notes
		}

		if record.ClockOut != nil {
			if record.ClockIn == nil || !record.ClockOut.After(*record.ClockIn) {
				return attendance.ErrClockOutBeforeClockIn
			}
			record.TotalHours = TotalHours(*record.ClockIn, *record.ClockOut)
		}

		emp, err := a.EmployeeRepository.GetByID(ctx, record.EmployeeID)
		if err != nil {
			return err
		}
		classification, err = a.classifyDay(ctx, emp, record.Date, &record, cfg, a.now())
		if err != nil {
			return err
		}
		if !classification.Open {
			record.Status = classification.Status
		}

		return a.AttendanceRepository.Update(ctx, record)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	resp := attendance.NewAttendanceResponse(record, a.loc)
	resp.ConfigIncomplete = classification.ConfigIncomplete
	return resp, nil
}

func (a *AttendanceServiceImpl) summarizeMonth(ctx context.Context, emp employee.Employee, year int, month time.Month, cfg settings.Settings) (MonthSummary, error) {
	first, last := attendance.MonthRange(year, month)

	records, err := a.AttendanceRepository.ListByEmployeeAndRange(ctx, emp.ID, first, last)
	if err != nil {
		return MonthSummary{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	leaves, err := a.LeaveRequestRepository.ListApprovedInRange(ctx, emp.ID, first, last)
	if err != nil {
		return MonthSummary{}, fmt.Errorf("failed to list approved leave: %w", err)
	}

	return ClassifyMonth(emp, year, month, records, leaves, cfg, a.now(), a.loc), nil
}

func (a *AttendanceServiceImpl) monthlyResponse(emp employee.Employee, summary MonthSummary) attendance.MonthlyAttendanceResponse {
	days := make([]attendance.DayResponse, 0, len(summary.Days))
	for i := len(summary.Days) - 1; i >= 0; i-- {
		d := summary.Days[i]
		day := attendance.DayResponse{
			Date:   d.Date.Format("2006-01-02"),
			Status: string(d.Status),
		}
		if d.Record != nil {
			rendered := attendance.NewAttendanceResponse(*d.Record, a.loc)
			day.ClockIn = rendered.ClockIn
			day.ClockOut = rendered.ClockOut
			day.TotalHours = rendered.TotalHours
			day.Notes = rendered.Notes
		}
		days = append(days, day)
	}

	return attendance.MonthlyAttendanceResponse{
		EmployeeID:       emp.ID,
		EmployeeName:     emp.FullName(),
		Month:            fmt.Sprintf("%04d-%02d", summary.Year, int(summary.Month)),
		Days:             days,
		Stats:            summary.Stats,
		ConfigIncomplete: summary.ConfigIncomplete,
	}
}

// GetMonthlyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlyAttendance(ctx context.Context, req attendance.MonthlyAttendanceRequest) (attendance.MonthlyAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	local := a.now().In(a.loc)
	year, month := local.Year(), local.Month()
	if req.Month != "" {
		var err error
		if year, month, err = attendance.ParseMonth(req.Month); err != nil {
			return attendance.MonthlyAttendanceResponse{}, err
		}
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}
	cfg, err := a.loadSettings(ctx)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	summary, err := a.summarizeMonth(ctx, emp, year, month, cfg)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}
	return a.monthlyResponse(emp, summary), nil
}

// ListMonthlyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMonthlyAttendance(ctx context.Context, month string) ([]attendance.MonthlyAttendanceResponse, error) {
	year, m, err := attendance.ParseMonth(month)
	if err != nil {
		return nil, err
	}

	employees, err := a.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	cfg, err := a.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.MonthlyAttendanceResponse, 0, len(employees))
	for _, emp := range employees {
		summary, err := a.summarizeMonth(ctx, emp, year, m, cfg)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
		result = append(result, a.monthlyResponse(emp, summary))
	}
	return result, nil
}

// CountLateDays implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CountLateDays(ctx context.Context, employeeID string, year int, month time.Month) (int, bool, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return 0, false, err
	}
	cfg, err := a.loadSettings(ctx)
	if err != nil {
		return 0, false, err
	}

	summary, err := a.summarizeMonth(ctx, emp, year, month, cfg)
	if err != nil {
		return 0, false, err
	}
	return summary.LateCount, summary.ConfigIncomplete, nil
}

// AutoClockOut implements attendance.AttendanceService.
// Yesterday's forgotten records are closed as well as today's.
func (a *AttendanceServiceImpl) AutoClockOut(ctx context.Context) (int, error) {
	cfg, err := a.loadSettings(ctx)
	if err != nil {
		return 0, err
	}
	autoOut, err := cfg.AutoClockOut()
	if err != nil {
		return 0, err
	}

	now := a.now()
	today := attendance.DateOf(now, a.loc)

	closed := 0
	for _, date := range []time.Time{today.AddDate(0, 0, -1), today} {
		cutoff := autoOut.On(date, a.loc)
		if now.Before(cutoff) {
			continue
		}

		open, err := a.AttendanceRepository.ListOpenByDate(ctx, date)
		if err != nil {
			return closed, fmt.Errorf("failed to list open attendance: %w", err)
		}

		for _, record := range open {
			// clocked in after the auto clock-out time; left for the employee
			if !cutoff.After(*record.ClockIn) {
				continue
			}
			clockOut := cutoff
			record.ClockOut = &clockOut
			record.TotalHours = TotalHours(*record.ClockIn, clockOut)
			note := "auto clock-out at " + autoOut.String()
			if record.Notes != nil && *record.Notes != "" {
				note = *record.Notes + "; " + note
			}
			record.Notes = &note

			if err := a.AttendanceRepository.Update(ctx, record); err != nil {
				return closed, fmt.Errorf("failed to auto clock-out %s: %w", record.ID, err)
			}
			closed++
		}
	}
	return closed, nil
}

// MarkDay implements attendance.AttendanceService.
// Week-off days and days that have not elapsed are never stored.
func (a *AttendanceServiceImpl) MarkDay(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	now := a.now()
	if !date.Before(attendance.DateOf(now, a.loc)) {
		return false, nil
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return false, err
	}
	cfg, err := a.loadSettings(ctx)
	if err != nil {
		return false, err
	}

	written := false
	err = a.db.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
		if err != nil {
			return fmt.Errorf("failed to check existing attendance: %w", err)
		}
		if existing != nil {
			return nil
		}

		c, err := a.classifyDay(ctx, emp, date, nil, cfg, now)
		if err != nil {
			return err
		}
		if c.Open || c.Status == attendance.StatusWeekOff {
			return nil
		}

		if _, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID: emp.ID,
			Date:       date,
			Status:     c.Status,
		}); err != nil {
			return err
		}
		written = true
		return nil
	})
	if errors.Is(err, attendance.ErrDuplicateRecord) {
		// a clock-in or another job won the race
		return false, nil
	}
	return written, err
}
