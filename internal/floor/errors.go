package floor

import (
	"errors"
	"fmt"
)

// Kind classifies why an intent was rejected.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindInvalidState
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid state"
	case KindValidation:
		return "validation error"
	}
	return "unknown"
}

// Sentinels for errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation error")
)

// Error is returned by every rejected intent. Entity and ID identify the
// offending record when there is one.
type Error struct {
	Kind   Kind
	Entity string
	ID     int
	Msg    string
}

func (e *Error) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s %d: %s", e.Kind, e.Entity, e.ID, e.Msg)
}

// Is matches the sentinel of the same kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrInvalidState:
		return e.Kind == KindInvalidState
	case ErrValidation:
		return e.Kind == KindValidation
	}
	return false
}

// KindOf extracts the Kind of err, or KindUnknown when err is not a *Error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

func notFound(entity string, id int) error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id, Msg: "does not exist"}
}

func conflict(entity string, id int, format string, args ...any) error {
	return &Error{Kind: KindConflict, Entity: entity, ID: id, Msg: fmt.Sprintf(format, args...)}
}

func invalidState(entity string, id int, format string, args ...any) error {
	return &Error{Kind: KindInvalidState, Entity: entity, ID: id, Msg: fmt.Sprintf(format, args...)}
}

func invalid(entity string, id int, format string, args ...any) error {
	return &Error{Kind: KindValidation, Entity: entity, ID: id, Msg: fmt.Sprintf(format, args...)}
}

// Validation builds a validation error for callers outside the store
// (layout editor, order sessions).
func Validation(entity string, id int, format string, args ...any) error {
	return invalid(entity, id, format, args...)
}

// Conflict builds a conflict error for callers outside the store.
func Conflict(entity string, id int, format string, args ...any) error {
	return conflict(entity, id, format, args...)
}

// InvalidState builds an invalid-state error for callers outside the store.
func InvalidState(entity string, id int, format string, args ...any) error {
	return invalidState(entity, id, format, args...)
}

// NotFound builds a not-found error for callers outside the store.
func NotFound(entity string, id int) error {
	return notFound(entity, id)
}
