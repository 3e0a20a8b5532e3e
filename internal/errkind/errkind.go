// Package errkind tags activity errors with a failure taxonomy: transient
// failures are left to the substrate's default retry policy, everything
// else is wrapped so the activity can hand the substrate a non-retryable
// application error.
package errkind

import "fmt"

// Kind names a failure category. The string value doubles as the Temporal
// application-error "type" passed to temporal.NewApplicationError, so the
// substrate's non-retryable list can match on it directly.
type Kind string

const (
	// Transient covers network failures, remote 5xx and temporary file
	// contention. Left alone, these get the substrate's default retry
	// policy.
	Transient Kind = "transient"
	// Contract covers malformed input: bad webhook body, invalid
	// revision, missing required field.
	Contract Kind = "contract-violation"
	// Auth covers git or registry authorization rejection.
	Auth Kind = "authorization"
	// BuildFailure covers a build tool exiting non-zero for reasons the
	// developer, not the engine, is responsible for.
	BuildFailure Kind = "build-failure"
	// Cancelled covers cooperative workflow cancellation.
	Cancelled Kind = "cancelled"
)

// NonRetryable reports whether activities failing with this kind should
// short-circuit substrate retries.
func (k Kind) NonRetryable() bool {
	return k != Transient
}

// Error wraps an underlying error with a Kind and, for build and sub-process
// failures, a captured stderr excerpt.
type Error struct {
	Kind   Kind
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v\n%s", e.Kind, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err under kind with no captured stderr.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Newf is New with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// WithStderr attaches a captured stderr excerpt (e.g. from a failed build
// sub-process) to a wrapped error.
func WithStderr(kind Kind, stderr string, err error) *Error {
	return &Error{Kind: kind, Stderr: stderr, Err: err}
}
