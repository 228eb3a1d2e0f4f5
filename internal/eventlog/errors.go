package eventlog

import "errors"

// Kind classifies why Record refused or failed an event.
type Kind int

const (
	KindUnknown Kind = iota
	// KindEmptyBody: the body had zero length.
	KindEmptyBody
	// KindMalformedPayload: the body was not a UTF-8 JSON object.
	KindMalformedPayload
	// KindMissingField: the object has no contextId.
	KindMissingField
	// KindInvalidField: contextId is not a non-empty string.
	KindInvalidField
	// KindIOFailure: creating the directory or appending the line failed.
	KindIOFailure
)

// String returns a snake_case name, also used as a metric label.
func (k Kind) String() string {
	switch k {
	case KindEmptyBody:
		return "empty_body"
	case KindMalformedPayload:
		return "malformed_payload"
	case KindMissingField:
		return "missing_field"
	case KindInvalidField:
		return "invalid_field"
	case KindIOFailure:
		return "io_failure"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrEmptyBody        = errors.New("no body provided")
	ErrMalformedPayload = errors.New("body is not a JSON object")
	ErrMissingField     = errors.New("no contextId provided")
	ErrInvalidField     = errors.New("contextId must be a non-empty string")
	ErrIOFailure        = errors.New("failed to append event")
)

func (k Kind) sentinel() error {
	switch k {
	case KindEmptyBody:
		return ErrEmptyBody
	case KindMalformedPayload:
		return ErrMalformedPayload
	case KindMissingField:
		return ErrMissingField
	case KindInvalidField:
		return ErrInvalidField
	case KindIOFailure:
		return ErrIOFailure
	default:
		return nil
	}
}

// Error is returned by Record for every rejected or failed event.
type Error struct {
	Kind Kind
	// Path is the file or directory involved in an IO failure.
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := "eventlog: " + e.Kind.String()
	if s := e.Kind.sentinel(); s != nil {
		msg = "eventlog: " + s.Error()
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

func ioFailure(path string, cause error) *Error {
	return &Error{Kind: KindIOFailure, Path: path, Err: cause}
}

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsClientError reports whether err was caused by the submitted payload
// rather than by the environment.
func IsClientError(err error) bool {
	switch KindOf(err) {
	case KindEmptyBody, KindMalformedPayload, KindMissingField, KindInvalidField:
		return true
	default:
		return false
	}
}

// PublicMessage is the text a transport shows the caller for err. IO
// failures get a fixed message so filesystem paths stay server-side.
func PublicMessage(err error) string {
	switch KindOf(err) {
	case KindEmptyBody:
		return ErrEmptyBody.Error()
	case KindMalformedPayload:
		return "invalid JSON body"
	case KindMissingField:
		return ErrMissingField.Error()
	case KindInvalidField:
		return ErrInvalidField.Error()
	default:
		return "failed to record event"
	}
}
