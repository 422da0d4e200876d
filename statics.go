package gojarx

import (
	"github.com/dop251/gojarx/unistring"
)

// Statics is the realm-wide record of the last successful built-in match,
// read through the legacy RegExp.$1-$9, lastMatch, lastParen, leftContext,
// rightContext and input properties.
type Statics struct {
	input   unistring.String
	last    *Match
	invalid bool
}

func (st *Statics) update(s unistring.String, m *Match) {
	st.input = s
	st.last = m
	st.invalid = false
}

func (st *Statics) invalidate() {
	st.input = ""
	st.last = nil
	st.invalid = true
}

// Reset returns the store to its initial, valid and empty, state.
func (st *Statics) Reset() {
	st.input = ""
	st.last = nil
	st.invalid = false
}

// Valid reports whether the store may be read.
func (st *Statics) Valid() bool {
	return !st.invalid
}

func (st *Statics) check() error {
	if st.invalid {
		return newTypeError(ErrStaticsInvalid, "")
	}
	return nil
}

// Match returns the stored match, nil if there is none or the store has been
// invalidated.
func (st *Statics) Match() *Match {
	return st.last
}

func (st *Statics) Input() (unistring.String, error) {
	if err := st.check(); err != nil {
		return "", err
	}
	return st.input, nil
}

// SetInput implements the RegExp.input setter. It does not affect the
// stored match.
func (st *Statics) SetInput(s unistring.String) error {
	if err := st.check(); err != nil {
		return err
	}
	st.input = s
	return nil
}

func (st *Statics) LastMatch() (unistring.String, error) {
	if err := st.check(); err != nil || st.last == nil {
		return "", err
	}
	return st.last.Matched(), nil
}

// LastParen is the last capture group of the stored match, or empty if the
// pattern has none or it did not participate.
func (st *Statics) LastParen() (unistring.String, error) {
	if err := st.check(); err != nil || st.last == nil {
		return "", err
	}
	n := st.last.GroupCount()
	if n == 0 {
		return "", nil
	}
	v, _ := st.last.Group(n)
	return v, nil
}

func (st *Statics) LeftContext() (unistring.String, error) {
	if err := st.check(); err != nil || st.last == nil {
		return "", err
	}
	return st.last.Input().Substring(0, st.last.Index()), nil
}

func (st *Statics) RightContext() (unistring.String, error) {
	if err := st.check(); err != nil || st.last == nil {
		return "", err
	}
	in := st.last.Input()
	return in.Substring(st.last.End(), in.Length()), nil
}

// Paren returns $n for n in 1..9. Groups that did not participate and
// numbers beyond the group count read as empty.
func (st *Statics) Paren(n int) (unistring.String, error) {
	if err := st.check(); err != nil || st.last == nil {
		return "", err
	}
	if n < 1 || n > 9 || n > st.last.GroupCount() {
		return "", nil
	}
	v, _ := st.last.Group(n)
	return v, nil
}
