package gojarx

import (
	"strings"

	"github.com/dop251/gojarx/unistring"
)

const maxSplitLimit = 1<<32 - 1

// withFlag returns flags with c added (or removed when drop is set).
func withFlag(flags string, c byte, drop bool) string {
	has := strings.IndexByte(flags, c) >= 0
	switch {
	case drop && has:
		return strings.ReplaceAll(flags, string(c), "")
	case !drop && !has:
		return flags + string(c)
	}
	return flags
}

// speciesClone derives the working pattern split and matchAll operate on.
func (r *Realm) speciesClone(o Object, flags string) (Object, error) {
	if c, ok := o.(Cloner); ok {
		return c.CloneWithFlags(flags)
	}
	src, err := o.Source()
	if err != nil {
		return nil, err
	}
	return r.Compile(src, flags)
}

// Split implements String.prototype.split with a pattern. A negative limit
// means no limit. Captures that did not participate come out as empty
// strings; use SplitCaptures to tell them apart.
func (r *Realm) Split(o Object, s unistring.String, limit int64) ([]unistring.String, error) {
	parts, err := r.SplitCaptures(o, s, limit)
	if err != nil {
		return nil, err
	}
	res := make([]unistring.String, len(parts))
	for i, p := range parts {
		res[i] = p.Value
	}
	return res, nil
}

// SplitCaptures is Split returning segments and captures as Capture values.
func (r *Realm) SplitCaptures(o Object, s unistring.String, limit int64) ([]Capture, error) {
	flags, f, err := readFlags(o, r.checkStdRegexp(o))
	if err != nil {
		return nil, err
	}
	unicodeMatching := f.Has(Unicode)
	splitter, err := r.speciesClone(o, withFlag(withFlag(flags, 'g', true), 'y', false))
	if err != nil {
		return nil, err
	}

	lim := int64(maxSplitLimit)
	if limit >= 0 && limit < maxSplitLimit {
		lim = limit
	}
	a := []Capture{}
	if lim == 0 {
		return a, nil
	}

	var exec func() (*Match, error)
	if rx := r.checkStdRegexp(splitter); rx != nil {
		exec = func() (*Match, error) {
			return r.execRegexp(rx, s)
		}
	} else {
		exec = func() (*Match, error) {
			return r.regExpExec(splitter, s)
		}
	}

	size := s.Length()
	if size == 0 {
		z, err := exec()
		if err != nil {
			return nil, err
		}
		if z == nil {
			a = append(a, Capture{Value: s, Defined: true})
		}
		return a, nil
	}

	p := 0
	q := p
	for q < size {
		if err := splitter.SetLastIndex(int64(q)); err != nil {
			return nil, err
		}
		z, err := exec()
		if err != nil {
			return nil, err
		}
		if z == nil {
			q = int(unistring.AdvanceIndex(s, int64(q), unicodeMatching))
			continue
		}
		e, err := splitter.LastIndex()
		if err != nil {
			return nil, err
		}
		if e > int64(size) {
			e = int64(size)
		}
		if e == int64(p) {
			q = int(unistring.AdvanceIndex(s, int64(q), unicodeMatching))
			continue
		}
		a = append(a, Capture{Value: s.Substring(p, q), Defined: true})
		if int64(len(a)) == lim {
			return a, nil
		}
		p = int(e)
		for i := 1; i <= z.GroupCount(); i++ {
			a = append(a, z.capture(i))
			if int64(len(a)) == lim {
				return a, nil
			}
		}
		q = p
	}
	a = append(a, Capture{Value: s.Substring(p, size), Defined: true})
	return a, nil
}
