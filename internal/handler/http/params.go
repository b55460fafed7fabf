package http

import (
	"net/http"
	"strconv"

	"github.com/corvitlabs/attendance-tracker/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validator.ValidationErrors{{Field: name, Message: name + " must be a positive number"}}
	}
	return id, nil
}

// queryInt parses an optional integer query parameter, appending to errs on failure.
func queryInt(r *http.Request, name string, errs *validator.ValidationErrors) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, validator.ValidationError{Field: name, Message: name + " must be a number"})
		return 0
	}
	return v
}

func queryString(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}
