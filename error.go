package vidinfo

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNSUPPORTED = "unsupported"
	EFETCH       = "fetch"
	EMANIFEST    = "manifest"
	EAUTH        = "auth_required"
	EEXTRACT     = "extraction"
)

// Extraction stages recorded on errors.
const (
	StageRoute    = "route"
	StageFetch    = "fetch"
	StageParse    = "parse"
	StageManifest = "manifest"
	StageAssemble = "assemble"
)

// Error represents an application-specific error. Locator and Stage are
// optional context for logging upstream.
type Error struct {
	Code    string
	Message string
	Locator string
	Stage   string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg += ": " + e.Err.Error()
		}
	}
	s := fmt.Sprintf("vidinfo error: code=%s message=%s", e.Code, msg)
	if e.Stage != "" {
		s += " stage=" + e.Stage
	}
	if e.Locator != "" {
		s += " locator=" + e.Locator
	}
	return s
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// FetchError reports a failed network request. Status is zero when the
// request never produced a response.
type FetchError struct {
	Status int
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("HTTP %d for %s", e.Status, e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request to %s failed", e.URL)
}

// Unwrap returns the underlying network error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL, except FetchError which
// reports EFETCH.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return EFETCH
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Message == "" && e.Err != nil {
			return ErrorMessage(e.Err)
		}
		return e.Message
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	return "Internal error."
}

// WithContext tags err with the locator and stage it occurred at. Fields
// already set on an application error are kept, and the code is never
// changed. A nil error stays nil.
func WithContext(err error, locator, stage string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		tagged := *e
		if tagged.Locator == "" {
			tagged.Locator = locator
		}
		if tagged.Stage == "" {
			tagged.Stage = stage
		}
		return &tagged
	}
	return &Error{
		Code:    ErrorCode(err),
		Locator: locator,
		Stage:   stage,
		Err:     err,
	}
}
