package latepolicy

import (
	"github.com/cmlabs-hris/attendance-engine/internal/domain/latepolicy"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// Decision is the outcome of comparing a month's lateness with what was
// already deducted for it.
type Decision struct {
	// Disabled is set when no late policy leave type is configured
	Disabled bool
	Excess   int
	Target   decimal.Decimal
	// Delta is positive only when more must be deducted
	Delta decimal.Decimal
	// Shrunk is set when the month now warrants less than was deducted
	Shrunk bool
}

// Compute derives the deduction for lateCount against the logged state.
// A month only ever moves up: a smaller target never produces a negative delta.
func Compute(lateCount int, cfg settings.Settings, logged latepolicy.LateDeductionLog) Decision {
	if !cfg.LatePolicyEnabled() {
		return Decision{Disabled: true, Target: decimal.Zero, Delta: decimal.Zero}
	}

	excess := lateCount - cfg.MaxLateDays
	if excess < 0 {
		excess = 0
	}
	target := decimal.NewFromInt(int64(excess)).Mul(cfg.LatePolicyDeductionPerDay)

	d := Decision{Excess: excess, Target: target, Delta: decimal.Zero}
	if target.GreaterThan(logged.TotalDeducted) {
		d.Delta = target.Sub(logged.TotalDeducted)
		return d
	}

	d.Shrunk = lateCount < logged.LastDeductedLateCount || target.LessThan(logged.TotalDeducted)
	return d
}
