package office

import "errors"

var (
	ErrLocationNotFound   = errors.New("office location not found")
	ErrNoOfficeConfigured = errors.New("no office location configured")
)
