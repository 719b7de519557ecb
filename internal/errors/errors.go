package errors

import (
	"errors"
	"fmt"
)

// This package defines the sentinel errors shared by every layer of the service.
// Lower layers wrap them with fmt.Errorf("...: %w", ...) and the API layer maps
// them to HTTP status codes with errors.Is, so no package below the API needs to
// know about HTTP.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input provided by a client failed validation.
	// It is never retried. Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrBackendUnavailable signifies a connection-level failure while talking to
	// the inference server (connection refused, DNS failure, dial timeout).
	// Safe to retry after a delay. Mapped to 503 Service Unavailable.
	ErrBackendUnavailable = errors.New("inference backend unavailable")

	// ErrBackendProtocol signifies that the backend answered, but with a payload
	// that could not be interpreted.
	ErrBackendProtocol = errors.New("inference backend protocol error")

	// ErrStorage signifies a failure of the local object store. A write that
	// fails with ErrStorage has not been applied.
	ErrStorage = errors.New("storage error")

	// ErrStoreNotInitialized is returned by every store operation invoked before
	// the store has been opened.
	ErrStoreNotInitialized = fmt.Errorf("%w: store is not initialized", ErrStorage)

	// ErrStreamTerminated signifies that the outbound consumer went away in the
	// middle of a stream. It is not a hard failure.
	ErrStreamTerminated = errors.New("stream terminated by client")

	// ErrInternal signifies an unexpected error on the server. Mapped to 500.
	ErrInternal = errors.New("internal server error")
)
