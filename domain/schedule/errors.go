package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// Failure kinds returned by lifecycle operations. Match them with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
)

// Error carries a failure kind together with a human readable message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func notFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func forbiddenf(format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Msg: fmt.Sprintf(format, args...)}
}

func invalidStatef(format string, args ...any) error {
	return &Error{Kind: ErrInvalidState, Msg: fmt.Sprintf(format, args...)}
}

func validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds an ErrNotFound failure for the named schedule.
func NotFound(id string) error {
	return notFoundf("schedule %s", id)
}

// IdentityNotFound builds an ErrNotFound failure for a referenced user.
func IdentityNotFound(userID string) error {
	return notFoundf("user %s", userID)
}

// Conflict builds an ErrConflict failure.
func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Msg: msg}
}

// Wire codes for failure kinds.
const (
	CodeNotFound     = "not_found"
	CodeForbidden    = "forbidden"
	CodeInvalidState = "invalid_state"
	CodeValidation   = "validation_error"
	CodeConflict     = "conflict"
	CodeInternal     = "internal"
)

var kindsByCode = map[string]error{
	CodeNotFound:     ErrNotFound,
	CodeForbidden:    ErrForbidden,
	CodeInvalidState: ErrInvalidState,
	CodeValidation:   ErrValidation,
	CodeConflict:     ErrConflict,
}

// Code returns the wire code for err. Errors outside the taxonomy map to
// CodeInternal; a nil error maps to "".
func Code(err error) string {
	if err == nil {
		return ""
	}
	for code, kind := range kindsByCode {
		if errors.Is(err, kind) {
			return code
		}
	}
	return CodeInternal
}

// FromCode rebuilds a typed failure from its wire code and message.
func FromCode(code, msg string) error {
	if code == "" {
		return nil
	}
	kind, ok := kindsByCode[code]
	if !ok {
		return errors.New(msg)
	}
	// msg is usually the full Error() text of the original failure.
	if rest, ok := strings.CutPrefix(msg, kind.Error()+": "); ok {
		msg = rest
	} else if msg == kind.Error() {
		msg = ""
	}
	return &Error{Kind: kind, Msg: msg}
}

// Validation builds an ErrValidation failure.
func Validation(format string, args ...any) error {
	return validationf(format, args...)
}
