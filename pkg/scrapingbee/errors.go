package scrapingbee

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies a failed tool invocation. The caller decides whether to
// retry based on Error.Retriable, not on the raw HTTP status.
type Kind string

const (
	// KindAuth indicates a bad or disabled API key. Never retriable.
	KindAuth Kind = "auth_error"
	// KindQuota indicates exhausted credits or concurrency. Retriable,
	// credits replenish and concurrency slots free up.
	KindQuota Kind = "quota_exceeded"
	// KindInvalidRequest indicates a caller-side parameter problem.
	// Retrying the same request would fail the same way.
	KindInvalidRequest Kind = "invalid_request"
	// KindUpstreamUnavailable indicates a transient upstream or network
	// failure, including timeouts. Retriable.
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	// KindUnknown indicates an unrecognized upstream response, surfaced
	// verbatim for diagnosis.
	KindUnknown Kind = "unknown"
)

// Error is the uniform failure contract for all tool invocations.
// The API key is never included in the message.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Retriable  bool
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind Kind, status int, message string) *Error {
	return &Error{
		Kind:       kind,
		StatusCode: status,
		Message:    message,
		Retriable:  kind == KindQuota || kind == KindUpstreamUnavailable,
	}
}

// NewInvalidRequestf creates a non-retriable invalid_request error.
// Used for local validation failures before any network call.
func NewInvalidRequestf(format string, args ...any) *Error {
	return &Error{
		Kind:    KindInvalidRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the classification of err, or KindUnknown if err was not
// produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsRetriable reports whether re-issuing the same request later may succeed
// without caller-side changes.
func IsRetriable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retriable
}
