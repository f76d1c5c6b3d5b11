package endpoints

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a key is not present in the registry
	ErrNotFound = errors.New("endpoint not found")

	// ErrDuplicateKey is returned when two entries share a key
	ErrDuplicateKey = errors.New("duplicate endpoint key")

	// ErrUnknownGroup is returned when an entry references an undeclared group
	ErrUnknownGroup = errors.New("unknown endpoint group")

	// ErrInvalidMethod is returned for methods outside GET, POST, PUT, DELETE, PATCH
	ErrInvalidMethod = errors.New("invalid HTTP method")

	// ErrInvalidTemplate is returned when a path template fails to parse
	ErrInvalidTemplate = errors.New("invalid path template")

	// ErrInvalidEntry is returned when an entry fails struct validation
	ErrInvalidEntry = errors.New("invalid endpoint entry")

	// ErrMissingPlaceholderValue is returned when a template placeholder has no value
	ErrMissingPlaceholderValue = errors.New("missing placeholder value")

	// ErrUnknownPlaceholder is returned when a value is supplied for a name the template lacks
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
)

// PlaceholderError reports the placeholder a render failed on. It unwraps to
// ErrMissingPlaceholderValue or ErrUnknownPlaceholder.
type PlaceholderError struct {
	Err      error
	Name     string
	Template string
}

func (e *PlaceholderError) Error() string {
	if errors.Is(e.Err, ErrUnknownPlaceholder) {
		return fmt.Sprintf("%v: %q not in %s", e.Err, e.Name, e.Template)
	}
	return fmt.Sprintf("%v: {%s} in %s", e.Err, e.Name, e.Template)
}

func (e *PlaceholderError) Unwrap() error {
	return e.Err
}
