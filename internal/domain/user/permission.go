package user

type Permission string

const (
	// Self service
	PermissionViewOwnProfile    Permission = "profile.view_own"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"

	// Oversight
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionReportsView       Permission = "reports.view"

	// Administration
	PermissionUserManage   Permission = "user.manage"
	PermissionOfficeManage Permission = "office.manage"
	PermissionPolicyManage Permission = "policy.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionReportsView,
		PermissionUserManage,
		PermissionOfficeManage,
		PermissionPolicyManage,
	},
	RoleHR: {
		PermissionViewOwnProfile,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionReportsView,
		PermissionUserManage,
	},
	RoleManager: {
		PermissionViewOwnProfile,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
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
