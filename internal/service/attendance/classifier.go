package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// DayInput is everything needed to classify one employee day.
type DayInput struct {
	Employee employee.Employee
	// Date is the calendar date as midnight UTC
	Date time.Time
	// Record is the stored attendance row of the day, if any
	Record *attendance.Attendance
	// Leaves are approved requests of the employee; only those covering Date matter
	Leaves   []leave.LeaveRequest
	Settings settings.Settings
	// Now is the evaluation instant
	Now      time.Time
	Location *time.Location
}

// Classification is the derived status of one day.
type Classification struct {
	Status attendance.Status
	// Open is true for a day that has not elapsed and has no clock-in
	Open bool
	// ConfigIncomplete is true when a clock-in was classified without a cutoff
	ConfigIncomplete bool
}

// Classify derives the status of one day. Rules apply in order: week-off,
// approved leave (half days included, over a same-day clock-in), missing
// clock-in, then clock-in time against the late cutoff.
func Classify(in DayInput) Classification {
	if in.Employee.IsWeekOff(in.Date) {
		return Classification{Status: attendance.StatusWeekOff}
	}

	for _, lr := range in.Leaves {
		if lr.IsApproved() && lr.Covers(in.Date) {
			return Classification{Status: attendance.StatusLeave}
		}
	}

	if in.Record == nil || in.Record.ClockIn == nil {
		today := attendance.DateOf(in.Now, in.Location)
		if in.Date.Before(today) {
			return Classification{Status: attendance.StatusAbsent}
		}
		return Classification{Status: attendance.StatusOpen, Open: true}
	}

	cutoff, err := in.Settings.LateCutoff()
	if err != nil {
		return Classification{Status: attendance.StatusPresent, ConfigIncomplete: true}
	}

	// strictly after the cutoff second is late
	if settings.TimeOfDayOf(in.Record.ClockIn.In(in.Location)) > cutoff {
		return Classification{Status: attendance.StatusLate}
	}
	return Classification{Status: attendance.StatusPresent}
}

// TotalHours returns clockOut - clockIn in hours rounded to one decimal.
func TotalHours(clockIn, clockOut time.Time) *decimal.Decimal {
	seconds := int64(clockOut.Sub(clockIn) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	hours := decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600)).Round(1)
	return &hours
}

// DayClassification is one classified calendar day of a month.
type DayClassification struct {
	Date   time.Time
	Record *attendance.Attendance
	Classification
}

// MonthSummary is the classification of every elapsed day of a month.
type MonthSummary struct {
	Year  int
	Month time.Month
	// Days in ascending date order, open days excluded
	Days             []DayClassification
	Stats            attendance.MonthlyStats
	LateCount        int
	ConfigIncomplete bool
}

// ClassifyMonth classifies each day of the month up to the evaluation day.
func ClassifyMonth(
	emp employee.Employee,
	year int,
	month time.Month,
	records []attendance.Attendance,
	leaves []leave.LeaveRequest,
	cfg settings.Settings,
	now time.Time,
	loc *time.Location,
) MonthSummary {
	summary := MonthSummary{Year: year, Month: month, Days: make([]DayClassification, 0)}

	byDate := make(map[string]*attendance.Attendance, len(records))
	for i := range records {
		byDate[records[i].Date.Format("2006-01-02")] = &records[i]
	}

	first, last := attendance.MonthRange(year, month)
	today := attendance.DateOf(now, loc)
	if today.Before(last) {
		last = today
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		record := byDate[d.Format("2006-01-02")]
		c := Classify(DayInput{
			Employee: emp,
			Date:     d,
			Record:   record,
			Leaves:   leaves,
			Settings: cfg,
			Now:      now,
			Location: loc,
		})
		if c.Open {
			continue
		}

		summary.Days = append(summary.Days, DayClassification{Date: d, Record: record, Classification: c})
		if c.ConfigIncomplete {
			summary.ConfigIncomplete = true
		}

		switch c.Status {
		case attendance.StatusPresent:
			summary.Stats.Present++
		case attendance.StatusLate:
			summary.Stats.Late++
		case attendance.StatusAbsent:
			summary.Stats.Absent++
		case attendance.StatusLeave:
			summary.Stats.Leave++
		case attendance.StatusWeekOff:
			summary.Stats.WeekOff++
		}
	}

	summary.LateCount = summary.Stats.Late
	return summary
}
