package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"

	app_errors "yanyu/backend/internal/errors"
)

// maxErrorBody caps how much of a failed response body is kept for the error message.
const maxErrorBody = 4 << 10

// errStreamDone ends a stream scan after the terminal frame.
var errStreamDone = errors.New("llm: stream done")

// StatusError is returned when a backend answers the initiating request with a
// non-success status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api returned non-2xx status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned non-2xx status %d: %s", e.StatusCode, e.Body)
}

// newStatusError reads (a bounded prefix of) the body for the error message.
func newStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}

// classifyTransportError marks connection-level failures as ErrBackendUnavailable.
// Cancellation by the caller is passed through untouched.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if isConnectionFailure(err) {
		return fmt.Errorf("%w: %w", app_errors.ErrBackendUnavailable, err)
	}
	return fmt.Errorf("http request failed: %w", err)
}

func isConnectionFailure(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
