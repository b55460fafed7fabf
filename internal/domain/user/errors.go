package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrEmployeeIDExists        = errors.New("employee id already registered")
	ErrUserInactive            = errors.New("user account is inactive")
	ErrAdminAlreadyExists      = errors.New("an admin account already exists")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCannotDeleteSelf        = errors.New("cannot delete your own account")
)
