package gojarx

import (
	"github.com/dop251/gojarx/unistring"
)

// execRegexp is the built-in exec: it applies the lastIndex rules of global
// and sticky patterns, runs the engine and records the match in the
// statics.
func (r *Realm) execRegexp(rx *RegExp, s unistring.String) (*Match, error) {
	globalOrSticky := rx.flags&(Global|Sticky) != 0
	index := rx.lastIndex
	if !globalOrSticky {
		index = 0
	}

	if index > int64(s.Length()) {
		if globalOrSticky {
			if err := rx.SetLastIndex(0); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	match, err := rx.matcher.Search(s, int(index), rx.flags.Has(Sticky))
	if err != nil {
		return nil, err
	}
	if globalOrSticky {
		if match == nil {
			index = 0
		} else {
			index = int64(match.End())
		}
		if err := rx.SetLastIndex(index); err != nil {
			return nil, err
		}
	}
	if match != nil {
		r.updateStatics(rx, s, match)
	}
	return match, nil
}

// updateStatics records a match made by the built-in exec of this realm.
// Patterns without legacy features invalidate the store, patterns of other
// realms leave it alone.
func (r *Realm) updateStatics(rx *RegExp, s unistring.String, m *Match) {
	if r.closed || rx.realm != r {
		return
	}
	if rx.legacy {
		r.statics.update(s, m)
	} else {
		r.statics.invalidate()
	}
}

// checkStdRegexp returns o as a *RegExp if the built-in algorithms may skip
// property lookups for it: it belongs to this realm, has no own overrides and
// the standard prototype still has its original exec and flags accessor.
func (r *Realm) checkStdRegexp(o Object) *RegExp {
	if r.opts.genericOnly {
		return nil
	}

	rx, ok := o.(*RegExp)
	if !ok {
		return nil
	}

	if !rx.standard || rx.proto != r.proto {
		return nil
	}

	if r.proto.exec != r.builtinExec || r.proto.flags != nil {
		return nil
	}

	return rx
}

// regExpExec is the generic exec: look exec up, call it and check the
// result is a match or null.
func (r *Realm) regExpExec(o Object, s unistring.String) (*Match, error) {
	res, err := o.Exec(s)
	if err != nil {
		return nil, err
	}
	return toMatch(s, res)
}

// Exec runs o against s, directly through the built-in algorithm when
// nothing has been overridden and through o's exec otherwise.
func (r *Realm) Exec(o Object, s unistring.String) (*Match, error) {
	if rx := r.checkStdRegexp(o); rx != nil {
		return r.execRegexp(rx, s)
	}
	return r.regExpExec(o, s)
}

func (r *Realm) Test(o Object, s unistring.String) (bool, error) {
	m, err := r.Exec(o, s)
	return m != nil, err
}

// execGlobal runs exec until it fails, handing every match to fn. lastIndex
// must already be 0. After an empty match lastIndex is moved on by hand.
func execGlobal(o Object, s unistring.String, fullUnicode bool, exec func() (*Match, error), fn func(*Match)) error {
	for {
		m, err := exec()
		if err != nil {
			return err
		}
		if m == nil {
			return nil
		}
		fn(m)
		if m.Matched().Length() == 0 {
			thisIndex, err := o.LastIndex()
			if err != nil {
				return err
			}
			if err := o.SetLastIndex(unistring.AdvanceIndex(s, thisIndex, fullUnicode)); err != nil {
				return err
			}
		}
	}
}

// globalMatches collects every match of a global pattern, on the fast path
// when possible.
func (r *Realm) globalMatches(o Object, rx *RegExp, s unistring.String, fullUnicode bool) ([]*Match, error) {
	if err := o.SetLastIndex(0); err != nil {
		return nil, err
	}
	var exec func() (*Match, error)
	if rx != nil {
		exec = func() (*Match, error) {
			return r.execRegexp(rx, s)
		}
	} else {
		exec = func() (*Match, error) {
			return r.regExpExec(o, s)
		}
	}
	var res []*Match
	err := execGlobal(o, s, fullUnicode, exec, func(m *Match) {
		res = append(res, m)
	})
	return res, err
}

// readFlags returns the flags an algorithm should act on: the compiled ones
// on the fast path, the "flags" property otherwise.
func readFlags(o Object, rx *RegExp) (string, Flags, error) {
	if rx != nil {
		return rx.flags.String(), rx.flags, nil
	}
	s, err := o.Flags()
	if err != nil {
		return "", 0, err
	}
	return s, flagsFromString(s), nil
}
