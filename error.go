package localesync

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks an absent resource file. MergeResource treats it as an empty object.
	ErrNotFound = errors.New("resource not found")
	// ErrBusy marks a transient lock on a resource file. Callers should retry on the next flush.
	ErrBusy = errors.New("resource busy")
	// ErrMalformedResource marks a resource file that is not a JSON object.
	ErrMalformedResource = errors.New("malformed resource")
	// ErrWatchUnavailable marks a language that has no directory to watch.
	ErrWatchUnavailable = errors.New("watch unavailable")
)

// ResourceError is returned by the resource store. It matches its Kind with errors.Is and
// unwraps to the underlying I/O or parse error.
type ResourceError struct {
	Kind      error
	Language  string
	Namespace string
	Path      string
	Err       error
}

func (re *ResourceError) Error() string {
	msg := fmt.Sprintf("%s %s", re.Path, re.Kind)
	if re.Err != nil {
		msg += ": " + re.Err.Error()
	}
	return msg
}

func (re *ResourceError) Unwrap() error {
	return re.Err
}

func (re *ResourceError) Is(target error) bool {
	return re.Kind != nil && target == re.Kind
}

func newResourceError(kind error, path string, err error) error {
	return &ResourceError{Kind: kind, Path: path, Err: err}
}

// IsRetryable reports whether err is a transient condition that a later flush may overcome.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrBusy)
}
