package gojarx

import (
	"reflect"

	"github.com/dop251/gojarx/unistring"
)

// Capture is a possibly-undefined capture group value.
type Capture struct {
	Value   unistring.String
	Defined bool
}

// MatchLike is the shape of a result returned by a user-supplied exec
// implementation: an indexed list (element 0 is the matched text), a match
// index and optional named groups.
type MatchLike interface {
	MatchIndex() int64
	MatchLength() int64
	MatchElement(i int64) Capture
	// MatchGroups returns the named groups. ok is false when the result has
	// no groups object.
	MatchGroups() (groups map[string]Capture, ok bool)
}

// Match is the result of a successful search.
//
// Matches produced by a Matcher carry code-unit offsets for every group;
// matches coerced from a MatchLike carry values only.
type Match struct {
	input unistring.String
	index int

	// offsets holds start/end pairs for group 0..n, -1 for unmatched
	// groups. nil for coerced matches.
	offsets []int
	// names holds the group name of every group (index 0 unused), nil if
	// the pattern declares no named groups.
	names []string

	elems  []Capture
	groups map[string]Capture
}

// NewMatch creates a match over input from engine offsets. names may be nil.
func NewMatch(input unistring.String, offsets []int, names []string) *Match {
	return &Match{
		input:   input,
		index:   offsets[0],
		offsets: offsets,
		names:   names,
	}
}

func (m *Match) Input() unistring.String {
	return m.input
}

// Index is the offset the match starts at.
func (m *Match) Index() int {
	return m.index
}

// End is the offset following the matched text.
func (m *Match) End() int {
	if m.offsets != nil {
		return m.offsets[1]
	}
	return m.index + m.Matched().Length()
}

// GroupCount is the number of capture groups, excluding the whole match.
func (m *Match) GroupCount() int {
	if m.offsets != nil {
		return len(m.offsets)/2 - 1
	}
	if len(m.elems) == 0 {
		return 0
	}
	return len(m.elems) - 1
}

// Group returns group i; 0 is the whole match.
func (m *Match) Group(i int) (unistring.String, bool) {
	c := m.capture(i)
	return c.Value, c.Defined
}

func (m *Match) capture(i int) Capture {
	if m.offsets != nil {
		if i < 0 || 2*i+1 >= len(m.offsets) {
			return Capture{}
		}
		start, end := m.offsets[2*i], m.offsets[2*i+1]
		if start < 0 {
			return Capture{}
		}
		return Capture{Value: m.input.Substring(start, end), Defined: true}
	}
	if i < 0 || i >= len(m.elems) {
		return Capture{}
	}
	return m.elems[i]
}

// Span returns the offsets of group i, or -1, -1 if they are unknown or the
// group did not participate.
func (m *Match) Span(i int) (start, end int) {
	if m.offsets == nil || i < 0 || 2*i+1 >= len(m.offsets) {
		return -1, -1
	}
	return m.offsets[2*i], m.offsets[2*i+1]
}

func (m *Match) Matched() unistring.String {
	v, _ := m.Group(0)
	return v
}

func (m *Match) HasNamedGroups() bool {
	return m.names != nil || m.groups != nil
}

// GroupNames lists the declared group names in source order.
func (m *Match) GroupNames() []string {
	if m.names != nil {
		var res []string
		for _, n := range m.names {
			if n != "" {
				res = append(res, n)
			}
		}
		return res
	}
	if m.groups != nil {
		res := make([]string, 0, len(m.groups))
		for n := range m.groups {
			res = append(res, n)
		}
		return res
	}
	return nil
}

func (m *Match) NamedGroup(name string) (unistring.String, bool) {
	if m.names != nil {
		var c Capture
		for i, n := range m.names {
			if n == name {
				c = m.capture(i)
				if c.Defined {
					break
				}
			}
		}
		return c.Value, c.Defined
	}
	c := m.groups[name]
	return c.Value, c.Defined
}

func (m *Match) MatchIndex() int64 {
	return int64(m.index)
}

func (m *Match) MatchLength() int64 {
	return int64(m.GroupCount() + 1)
}

func (m *Match) MatchElement(i int64) Capture {
	return m.capture(int(i))
}

func (m *Match) MatchGroups() (map[string]Capture, bool) {
	if m.groups != nil {
		return m.groups, true
	}
	if m.names == nil {
		return nil, false
	}
	res := make(map[string]Capture)
	for _, n := range m.GroupNames() {
		v, ok := m.NamedGroup(n)
		res[n] = Capture{Value: v, Defined: ok}
	}
	return res, true
}

// toMatch converts the value returned by an exec implementation. nil means
// no match.
func toMatch(input unistring.String, v interface{}) (*Match, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case *Match:
		if v == nil {
			return nil, nil
		}
		return v, nil
	case MatchLike:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return nil, nil
		}
		n := v.MatchLength()
		if n < 1 {
			n = 1
		}
		elems := make([]Capture, n)
		for i := int64(0); i < n; i++ {
			elems[i] = v.MatchElement(i)
		}
		// element 0 is coerced to a string even when undefined
		elems[0].Defined = true
		m := &Match{
			input: input,
			index: int(v.MatchIndex()),
			elems: elems,
		}
		if groups, ok := v.MatchGroups(); ok {
			if groups == nil {
				groups = map[string]Capture{}
			}
			m.groups = groups
		}
		return m, nil
	}
	return nil, newTypeError(ErrNotObjectOrNull, "")
}

func clampIndex(i, l int64) int64 {
	if i < 0 {
		return 0
	}
	if i > l {
		return l
	}
	return i
}
