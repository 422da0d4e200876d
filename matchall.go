package gojarx

import (
	"github.com/dop251/gojarx/unistring"
)

// MatchIterator yields the matches of a pattern over a string one at a time.
// It is not restartable.
type MatchIterator struct {
	realm       *Realm
	matcher     Object
	s           unistring.String
	fullUnicode bool

	prevStart int
	started   bool
	done      bool
}

// MatchAll implements String.prototype.matchAll. The iterator works on a
// copy of o with the global flag forced on, starting at o's lastIndex.
func (r *Realm) MatchAll(o Object, s unistring.String) (*MatchIterator, error) {
	flags, f, err := readFlags(o, r.checkStdRegexp(o))
	if err != nil {
		return nil, err
	}
	matcher, err := r.speciesClone(o, withFlag(flags, 'g', false))
	if err != nil {
		return nil, err
	}
	lastIndex, err := o.LastIndex()
	if err != nil {
		return nil, err
	}
	if err := matcher.SetLastIndex(lastIndex); err != nil {
		return nil, err
	}
	return &MatchIterator{
		realm:       r,
		matcher:     matcher,
		s:           s,
		fullUnicode: f.Has(Unicode),
	}, nil
}

func (it *MatchIterator) Done() bool {
	return it.done
}

// Next returns the next match. ok is false once the sequence is exhausted: a
// failed match, or a match starting where the previous one did, ends it.
func (it *MatchIterator) Next() (m *Match, ok bool, err error) {
	if it.done {
		return nil, false, nil
	}

	m, err = it.realm.Exec(it.matcher, it.s)
	if err != nil {
		it.done = true
		return nil, false, err
	}
	if m == nil || it.started && m.Index() == it.prevStart {
		it.done = true
		return nil, false, nil
	}
	it.started = true
	it.prevStart = m.Index()

	if m.Matched().Length() == 0 {
		thisIndex, err := it.matcher.LastIndex()
		if err != nil {
			it.done = true
			return nil, false, err
		}
		if err := it.matcher.SetLastIndex(unistring.AdvanceIndex(it.s, thisIndex, it.fullUnicode)); err != nil {
			it.done = true
			return nil, false, err
		}
	}
	return m, true, nil
}

// Collect drains the iterator.
func (it *MatchIterator) Collect() ([]*Match, error) {
	var res []*Match
	for {
		m, ok, err := it.Next()
		if err != nil {
			return res, err
		}
		if !ok {
			return res, nil
		}
		res = append(res, m)
	}
}
