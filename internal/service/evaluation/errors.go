package evaluation

import "fmt"

// InvalidInputError reports input the engine refuses to evaluate, such as an
// out-of-range coordinate or instants in the wrong order.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
