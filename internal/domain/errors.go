package domain

import "errors"

// Sentinel errors for client operations
var (
	// ErrServerOffline indicates the server or account service is unreachable
	ErrServerOffline = errors.New("media server is unreachable")

	// ErrAuthFailed indicates the credentials or token were rejected
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrDeviceNotFound indicates no device matched the requested name
	ErrDeviceNotFound = errors.New("device not found")

	// ErrNoConnection indicates a device advertises no connection to reach it by
	ErrNoConnection = errors.New("no connection present for this device")

	// ErrSectionNotFound indicates no library section matched the lookup
	ErrSectionNotFound = errors.New("library section not found")

	// ErrSectionTypeMismatch indicates a section was specialized to the wrong content type
	ErrSectionTypeMismatch = errors.New("library section type mismatch")

	// ErrInvalidFilter indicates a filter value cannot be rendered into a query
	ErrInvalidFilter = errors.New("invalid filter value")

	// ErrInvalidURL indicates a malformed endpoint or request URL
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidArgument indicates a caller-supplied argument is out of range
	ErrInvalidArgument = errors.New("invalid argument")
)
