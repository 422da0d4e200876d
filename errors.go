package gojarx

import (
	"errors"
	"fmt"
)

var (
	ErrNotObjectOrNull      = errors.New("RegExp exec method returned something other than an Object or null")
	ErrLastIndexReadOnly    = errors.New("Cannot assign to read only property 'lastIndex'")
	ErrIncompatibleReceiver = errors.New("incompatible receiver")
	ErrStaticsInvalid       = errors.New("RegExp legacy static properties are not available")
	ErrInvalidFlags         = errors.New("invalid flags")
)

// CompileError is returned when a pattern and flag combination is rejected.
// It corresponds to a SyntaxError in the host language.
type CompileError struct {
	Source string
	Flags  string
	Err    error
}

func (e *CompileError) Error() string {
	if errors.Is(e.Err, ErrInvalidFlags) {
		return fmt.Sprintf("Invalid flags supplied to RegExp constructor '%s'", e.Flags)
	}
	return fmt.Sprintf("Invalid regular expression: /%s/%s: %v", e.Source, e.Flags, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// TypeError covers protocol and state violations. Kind is one of the Err*
// sentinels and is reachable through errors.Is.
type TypeError struct {
	Msg  string
	Kind error
}

func (e *TypeError) Error() string {
	return "TypeError: " + e.Msg
}

func (e *TypeError) Unwrap() error {
	return e.Kind
}

func newTypeError(kind error, format string, args ...interface{}) *TypeError {
	msg := kind.Error()
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &TypeError{Msg: msg, Kind: kind}
}
