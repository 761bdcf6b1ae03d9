package platform

import (
	"fmt"
	"net/http"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
)

// Error kinds
const (
	// ErrPlatformUnavailable is a network or API failure on a fetch or mutation.
	ErrPlatformUnavailable = errors.Sentinel("platform unavailable")
	// ErrPermissionDenied is returned when the platform rejects a request for lack of permissions.
	ErrPermissionDenied = errors.Sentinel("permission denied")
	// ErrMalformedInput is invalid operator input, such as bad template JSON or a bad number.
	ErrMalformedInput = errors.Sentinel("malformed input")
	// ErrNotFound is a role, channel, category, or other object that no longer exists.
	ErrNotFound = errors.Sentinel("not found")
)

// Error is a classified platform failure.
type Error struct {
	// Op is the operation that failed, such as "list invites".
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrPermissionDenied) and friends work on classified errors.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// Classify wraps err in an *Error with a kind based on the HTTP status, if any.
// Errors that are already classified are returned unchanged. Classify(op, nil) returns nil.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var perr *Error
	if errors.As(err, &perr) {
		return err
	}

	return &Error{Op: op, Kind: kindOf(err), Err: err}
}

func kindOf(err error) error {
	var httpErr *httputil.HTTPError
	if !errors.As(err, &httpErr) {
		return ErrPlatformUnavailable
	}

	switch httpErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrPermissionDenied
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrPlatformUnavailable
	}
}

// IsNotFound returns true if err is (or wraps) a 404 from the platform or ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(Classify("", err), ErrNotFound)
}

// Rejection is an operator-facing error: its message is shown to the user as-is.
type Rejection struct {
	Kind error
	Msg  string
}

func (r *Rejection) Error() string { return r.Msg }

func (r *Rejection) Is(target error) bool { return r.Kind == target }

// Malformed returns an ErrMalformedInput rejection.
func Malformed(format string, args ...any) error {
	return &Rejection{Kind: ErrMalformedInput, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns an ErrNotFound rejection.
func NotFound(format string, args ...any) error {
	return &Rejection{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Denied returns an ErrPermissionDenied rejection, for when the user isn't allowed to do something.
func Denied(format string, args ...any) error {
	return &Rejection{Kind: ErrPermissionDenied, Msg: fmt.Sprintf(format, args...)}
}

// AsRejection returns the rejection wrapped in err, if any.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
