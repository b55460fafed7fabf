package policy

import (
	"errors"
	"fmt"
)

var (
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrInvalidSeedMode = errors.New("invalid seed mode")
)

// ConfigurationError reports a policy key that is missing or cannot be parsed.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %q: %s", e.Key, e.Reason)
}
