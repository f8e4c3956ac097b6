package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the catalog backend is unreachable
	ErrServerOffline = errors.New("catalog backend is unreachable")

	// ErrAuthFailed indicates the backend rejected the session
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrNotFound indicates the requested catalog node does not exist
	ErrNotFound = errors.New("catalog node not found")

	// ErrRequestFailed indicates the backend answered with success=false
	ErrRequestFailed = errors.New("backend reported request failure")

	// ErrNoMorePages indicates load-more was requested on the last page
	ErrNoMorePages = errors.New("no more pages for this leaf")

	// ErrNotConnected indicates the push channel has no live connection
	ErrNotConnected = errors.New("push channel is not connected")
)
