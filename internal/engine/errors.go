package engine

import (
	"errors"
	"fmt"
)

// ConfigError reports a configuration or usage problem with a draw request:
// a negative draw count, an invalid excluded-winner range, or a range that is
// infeasible given the current state. The draw state is untouched when one is
// returned. Shortfalls in the candidate pool are not errors; the draw simply
// shrinks.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is a draw configuration error, so callers
// can map it to a user-facing message rather than an internal failure.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
