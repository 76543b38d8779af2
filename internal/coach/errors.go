// ABOUTME: Error types for the coach client.
// ABOUTME: Upstream failures carry provider, status, and reason for logging.
package coach

import (
	"errors"
	"fmt"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("coaching unavailable: no API key configured")

// UpstreamError reports a failed chat-completion call: transport error,
// timeout, non-2xx status, or a malformed or empty body.
type UpstreamError struct {
	Provider   Provider
	StatusCode int
	Reason     string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s upstream error", e.Provider)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
