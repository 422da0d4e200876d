package gojarx

import (
	"github.com/dop251/gojarx/unistring"
)

// Match implements String.prototype.match with a pattern. For a
// non-global pattern m is the single exec result (nil if none). For a global
// pattern all holds the text of every match, nil if there were none.
func (r *Realm) Match(o Object, s unistring.String) (m *Match, all []unistring.String, err error) {
	rx := r.checkStdRegexp(o)
	_, flags, err := readFlags(o, rx)
	if err != nil {
		return nil, nil, err
	}
	if !flags.Has(Global) {
		if rx != nil {
			m, err = r.execRegexp(rx, s)
		} else {
			m, err = r.regExpExec(o, s)
		}
		return m, nil, err
	}

	res, err := r.globalMatches(o, rx, s, flags.Has(Unicode))
	if err != nil {
		return nil, nil, err
	}
	if len(res) == 0 {
		return nil, nil, nil
	}
	all = make([]unistring.String, 0, len(res))
	for _, match := range res {
		all = append(all, match.Matched())
	}
	return nil, all, nil
}

// Search returns the offset of the first match or -1. lastIndex is left as
// it was found.
func (r *Realm) Search(o Object, s unistring.String) (int, error) {
	rx := r.checkStdRegexp(o)
	if rx == nil {
		return r.searchGeneric(o, s)
	}

	previousLastIndex := rx.lastIndex
	if previousLastIndex != 0 {
		if err := rx.SetLastIndex(0); err != nil {
			return 0, err
		}
	}
	m, err := r.execRegexp(rx, s)
	if err != nil {
		return 0, err
	}
	if rx.lastIndex != previousLastIndex {
		if err := rx.SetLastIndex(previousLastIndex); err != nil {
			return 0, err
		}
	}
	if m == nil {
		return -1, nil
	}
	return m.Index(), nil
}

func (r *Realm) searchGeneric(o Object, s unistring.String) (int, error) {
	previousLastIndex, err := o.LastIndex()
	if err != nil {
		return 0, err
	}
	if previousLastIndex != 0 {
		if err := o.SetLastIndex(0); err != nil {
			return 0, err
		}
	}

	m, err := r.regExpExec(o, s)
	if err != nil {
		return 0, err
	}
	currentLastIndex, err := o.LastIndex()
	if err != nil {
		return 0, err
	}
	if currentLastIndex != previousLastIndex {
		if err := o.SetLastIndex(previousLastIndex); err != nil {
			return 0, err
		}
	}

	if m == nil {
		return -1, nil
	}
	return m.Index(), nil
}
