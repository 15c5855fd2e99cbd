package employee

type Permission string

const (
	// Attendance
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceCorrect Permission = "attendance.correct"
	PermissionAttendanceExport  Permission = "attendance.export"

	// Leave
	PermissionLeaveReview Permission = "leave.review"

	// Late policy
	PermissionLatePolicyEvaluate Permission = "late_policy.evaluate"
	PermissionLatePolicyView     Permission = "late_policy.view"

	// Settings
	PermissionSettingsView   Permission = "settings.view"
	PermissionSettingsManage Permission = "settings.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceClock,
		PermissionAttendanceViewAll,
		PermissionAttendanceCorrect,
		PermissionAttendanceExport,
		PermissionLeaveReview,
		PermissionLatePolicyEvaluate,
		PermissionLatePolicyView,
		PermissionSettingsView,
		PermissionSettingsManage,
	},
	RoleHR: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceClock,
		PermissionAttendanceViewAll,
		PermissionAttendanceCorrect,
		PermissionAttendanceExport,
		PermissionLeaveReview,
		PermissionLatePolicyEvaluate,
		PermissionLatePolicyView,
		PermissionSettingsView,
	},
	RoleEmployee: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceClock,
		PermissionSettingsView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
