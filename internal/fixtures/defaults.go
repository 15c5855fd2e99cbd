package fixtures

import (
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// ==========================================
// DEFAULT SETTINGS
// ==========================================

// DefaultSettings returns the settings a new organization starts with.
// The late policy stays disabled until an admin picks a leave type.
func DefaultSettings(companyName string) settings.Settings {
	return settings.Settings{
		MaxClockingTime:           "11:00 AM",
		AutoClockOutTime:          "7:00 PM",
		MaxLateDays:               3,
		LatePolicyDeductionPerDay: decimal.NewFromFloat(0.5),
		LatePolicyLeaveTypeID:     nil,
		CompanyName:               companyName,
		CompanyAddress:            []string{},
	}
}
