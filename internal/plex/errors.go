package plex

import "fmt"

// TransportError reports a failed HTTP exchange: network failure, timeout,
// or a non-2xx status. Network failures wrap domain.ErrServerOffline and a
// 401 wraps domain.ErrAuthFailed, so callers can branch with errors.Is.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("plex %s %s: status %d: %v", e.Method, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("plex %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that could not be turned into the
// expected records, even after escape repair.
type DecodeError struct {
	Resource string // which request was being decoded, e.g. "sections"
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
