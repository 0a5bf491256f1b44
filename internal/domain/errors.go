package domain

import "errors"

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Error is a domain failure of a given kind with a caller-facing message
// and an optional underlying cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NotFound(msg string) error          { return &Error{Kind: ErrNotFound, Msg: msg} }
func Conflict(msg string) error          { return &Error{Kind: ErrConflict, Msg: msg} }
func Validation(msg string) error        { return &Error{Kind: ErrValidation, Msg: msg} }
func InsufficientFunds(msg string) error { return &Error{Kind: ErrInsufficientFunds, Msg: msg} }

// Wrap attaches cause to a new error of the given kind.
func Wrap(kind error, msg string, cause error) error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Message returns the caller-facing message of a domain error, or "" when
// err carries none.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Error()
	}
	return ""
}
