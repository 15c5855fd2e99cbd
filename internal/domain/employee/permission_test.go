package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionSettingsManage))
	assert.False(t, HasPermission(RoleHR, PermissionSettingsManage))
	assert.True(t, HasPermission(RoleHR, PermissionLatePolicyEvaluate))
	assert.True(t, HasPermission(RoleEmployee, PermissionAttendanceClock))
	assert.False(t, HasPermission(RoleEmployee, PermissionAttendanceViewAll))
	assert.False(t, HasPermission(Role("owner"), PermissionAttendanceViewOwn))
}

func TestEmployee_IsWeekOff(t *testing.T) {
	sunday := 0
	emp := Employee{WeekOffDay: &sunday}

	// 2026-10-18 is a Sunday
	assert.True(t, emp.IsWeekOff(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)))
	assert.False(t, emp.IsWeekOff(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	assert.False(t, Employee{}.IsWeekOff(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)))
}

func TestEmployee_FullName(t *testing.T) {
	assert.Equal(t, "Asha Verma", Employee{FirstName: "Asha", LastName: "Verma"}.FullName())
	assert.Equal(t, "Asha", Employee{FirstName: "Asha"}.FullName())
}
