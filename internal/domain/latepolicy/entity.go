package latepolicy

import (
	"time"

	"github.com/shopspring/decimal"
)

// LateDeductionLog records how much lateness of one employee-month was already
// converted into a leave deduction. TotalDeducted never decreases.
type LateDeductionLog struct {
	ID                    string
	EmployeeID            string
	Year                  int
	Month                 int
	LastDeductedLateCount int
	TotalDeducted         decimal.Decimal
	LeaveTypeID           *string
	UpdatedAt             time.Time
}
