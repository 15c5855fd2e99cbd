package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimeOfDay is a wall-clock time as seconds after midnight.
type TimeOfDay int

var timeOfDayLayouts = []string{"15:04", "15:04:05", "3:04 PM", "03:04 PM", "3:04PM", "03:04PM"}

// ParseTimeOfDay accepts "11:00", "11:00:00" and "11:00 AM" style values.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
}

// TimeOfDayOf returns the time of day of t in t's own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// On returns the instant at this time of day on the calendar date in loc.
func (d TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	secs := int(d)
	return time.Date(date.Year(), date.Month(), date.Day(), secs/3600, (secs%3600)/60, secs%60, 0, loc)
}

func (d TimeOfDay) String() string {
	secs := int(d)
	if secs%60 != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/3600, (secs%3600)/60)
}

// Settings is the organization-wide singleton configuration.
type Settings struct {
	ID string

	// Times of day are kept as entered by the admin, e.g. "11:00 AM"
	MaxClockingTime  string
	AutoClockOutTime string

	MaxLateDays               int
	LatePolicyDeductionPerDay decimal.Decimal
	LatePolicyLeaveTypeID     *string

	CompanyName    string
	CompanyAddress []string

	UpdatedAt time.Time
}

// LateCutoff returns the configured late cutoff or ErrConfigIncomplete.
func (s Settings) LateCutoff() (TimeOfDay, error) {
	return parseConfigured(s.MaxClockingTime, "max_clocking_time")
}

// AutoClockOut returns the configured auto clock-out time or ErrConfigIncomplete.
func (s Settings) AutoClockOut() (TimeOfDay, error) {
	return parseConfigured(s.AutoClockOutTime, "auto_clock_out_time")
}

// LatePolicyEnabled reports whether late days are converted into leave deductions.
func (s Settings) LatePolicyEnabled() bool {
	return s.LatePolicyLeaveTypeID != nil && *s.LatePolicyLeaveTypeID != ""
}

func parseConfigured(value, field string) (TimeOfDay, error) {
	if strings.TrimSpace(value) == "" {
		return 0, fmt.Errorf("%w: %s is not set", ErrConfigIncomplete, field)
	}
	tod, err := ParseTimeOfDay(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrConfigIncomplete, field, err)
	}
	return tod, nil
}
