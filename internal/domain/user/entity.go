package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee" // Regular employee
	RoleManager  Role = "manager"  // Sees team attendance and reports
	RoleHR       Role = "hr"       // Manages people and reports
	RoleAdmin    Role = "admin"    // Full access, including policy
)

var Roles = []Role{RoleEmployee, RoleManager, RoleHR, RoleAdmin}

func (r Role) IsValid() bool {
	for _, role := range Roles {
		if role == r {
			return true
		}
	}
	return false
}

type User struct {
	ID           int64
	EmployeeID   string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is a system administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanViewAllAttendance checks if user may see other users' records
func (u *User) CanViewAllAttendance() bool {
	return HasPermission(u.Role, PermissionAttendanceViewAll)
}
