package fitbit

import (
	"errors"
	"fmt"
)

// ErrCatalogUnavailable signals that the food search call itself failed.
// Callers must not confuse this with a successful search that found nothing.
var ErrCatalogUnavailable = errors.New("food catalog unavailable")

// AuthError means the access credential is unusable and refreshing it did not
// help. Fatal for the current turn.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fitbit auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("fitbit auth: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// LogWriteError carries the status and body of a failed food-log write so the
// caller can speak a specific failure message.
type LogWriteError struct {
	StatusCode int
	Body       string
}

func (e *LogWriteError) Error() string {
	return fmt.Sprintf("fitbit food log write failed: status %d: %s", e.StatusCode, e.Body)
}
