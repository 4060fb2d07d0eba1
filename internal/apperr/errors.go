package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrQuotaExceeded means an anonymous user used up the free analyses.
	ErrQuotaExceeded = errors.New("guest analysis quota exceeded")
	ErrNotFound      = errors.New("not found")
	ErrDraft         = errors.New("article is an unsaved draft")
)

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// Kind names the backend operation family a RemoteError came from.
type Kind string

const (
	KindAnalyze  Kind = "AnalyzeError"
	KindFetch    Kind = "FetchError"
	KindNotFound Kind = "NotFoundError"
	KindRewrite  Kind = "RewriteError"
	KindAuth     Kind = "AuthError"
)

// RemoteError is a failed call to the backend. Status is zero when the request
// never got a response (network error).
type RemoteError struct {
	Kind   Kind
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("%s: %s: status %d: %s", e.Kind, e.Op, e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("%s: %s: status %d", e.Kind, e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrNotFound && (e.Kind == KindNotFound || e.Status == http.StatusNotFound)
}

// Network reports whether the request failed before any response arrived.
func (e *RemoteError) Network() bool {
	return e.Status == 0
}

func IsKind(err error, kind Kind) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == kind
}
