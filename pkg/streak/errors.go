package streak

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIndexOutOfRange   = errors.New("day index out of range")
	ErrInvalidDifficulty = errors.New("difficulty must be 1-4")
	ErrInvalidConfig     = errors.New("invalid board config")
)

// ValidationError lists every field that failed board validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range sortedKeys(e.Fields) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid board config: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func outOfRange(idx, days int) error {
	return fmt.Errorf("%w: %d not in [1, %d]", ErrIndexOutOfRange, idx, days)
}
