package latepolicy

import (
	"testing"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/latepolicy"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func policy(maxLate int, perDay string) settings.Settings {
	leaveType := "0190d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"
	return settings.Settings{
		MaxLateDays:               maxLate,
		LatePolicyDeductionPerDay: decimal.RequireFromString(perDay),
		LatePolicyLeaveTypeID:     &leaveType,
	}
}

func logged(count int, total string) latepolicy.LateDeductionLog {
	return latepolicy.LateDeductionLog{LastDeductedLateCount: count, TotalDeducted: decimal.RequireFromString(total)}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		lateCount int
		cfg       settings.Settings
		logged    latepolicy.LateDeductionLog
		excess    int
		target    string
		delta     string
		shrunk    bool
	}{
		{"5 late over 3 at half a day", 5, policy(3, "0.5"), latepolicy.LateDeductionLog{}, 2, "1.0", "1.0", false},
		{"at the threshold", 3, policy(3, "0.5"), latepolicy.LateDeductionLog{}, 0, "0", "0", false},
		{"below the threshold", 1, policy(3, "0.5"), latepolicy.LateDeductionLog{}, 0, "0", "0", false},
		{"same count again is a no-op", 5, policy(3, "0.5"), logged(5, "1.0"), 2, "1.0", "0", false},
		{"more late days deduct only the difference", 7, policy(3, "0.5"), logged(5, "1.0"), 4, "2.0", "1.0", false},
		{"fewer late days are never reversed", 4, policy(3, "0.5"), logged(5, "1.0"), 1, "0.5", "0", true},
		{"lower rate after a deduction is never reversed", 5, policy(3, "0.25"), logged(5, "1.0"), 2, "0.5", "0", true},
		{"whole day rate", 6, policy(2, "1"), logged(4, "2"), 4, "4", "2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Compute(tt.lateCount, tt.cfg, tt.logged)
			assert.False(t, d.Disabled)
			assert.Equal(t, tt.excess, d.Excess)
			assert.True(t, d.Target.Equal(decimal.RequireFromString(tt.target)), "target %s", d.Target)
			assert.True(t, d.Delta.Equal(decimal.RequireFromString(tt.delta)), "delta %s", d.Delta)
			assert.Equal(t, tt.shrunk, d.Shrunk)
		})
	}
}

func TestCompute_Disabled(t *testing.T) {
	cfg := policy(3, "0.5")
	cfg.LatePolicyLeaveTypeID = nil

	d := Compute(10, cfg, latepolicy.LateDeductionLog{})
	assert.True(t, d.Disabled)
	assert.True(t, d.Delta.IsZero())

	empty := ""
	cfg.LatePolicyLeaveTypeID = &empty
	assert.True(t, Compute(10, cfg, latepolicy.LateDeductionLog{}).Disabled)
}

func TestCompute_DeltaMatchesExcessDifference(t *testing.T) {
	cfg := policy(3, "0.5")
	for prev := 0; prev <= 8; prev++ {
		prevDecision := Compute(prev, cfg, latepolicy.LateDeductionLog{})
		state := latepolicy.LateDeductionLog{LastDeductedLateCount: prev, TotalDeducted: prevDecision.Target}
		for next := prev; next <= 10; next++ {
			d := Compute(next, cfg, state)
			want := decimal.NewFromInt(int64(d.Excess - prevDecision.Excess)).Mul(cfg.LatePolicyDeductionPerDay)
			assert.True(t, d.Delta.Equal(want), "prev %d next %d: delta %s want %s", prev, next, d.Delta, want)
		}
	}
}
