package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSubmitInFlight signals a submit attempt while a previous one has not
	// resolved yet.
	ErrSubmitInFlight = errors.New("form: submit already in progress")
	// ErrNilSubmit is returned when Submit is called without a submit function.
	ErrNilSubmit = errors.New("form: submit function is required")
)

// ValidationError carries the field errors that blocked a submit attempt. The
// external submit function is never invoked when this error is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "form: validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("form: validation failed: %s", strings.Join(names, ", "))
}
