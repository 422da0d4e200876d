package gojarx

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/dlclark/regexp2"

	"github.com/dop251/gojarx/unistring"
)

// Not goroutine-safe: the last converted subject is cached on the matcher.
// A Realm is single-threaded, use separate compilations for separate realms.
type regexp2Matcher struct {
	re      *regexp2.Regexp
	unicode bool

	// sticky is re anchored at the start offset with \G, compiled on first
	// anchored search.
	sticky *regexp2.Regexp
	source string
	opts   regexp2.RegexOptions

	// groupNums[k] is the engine group number of the k-th group in source
	// order. The engine numbers named groups after unnamed ones.
	groupNums []int
	names     []string

	cache struct {
		s     unistring.String
		runes []rune
		pos   []int
		valid bool
	}
}

// CompileRegexp2 is the default Compiler, backed by regexp2 in ECMAScript
// mode. With Unicode set the engine sees code points instead of code units,
// so surrogate pairs match as single characters. Without it, astral
// characters of the source are split into surrogate escapes to line up with
// the code-unit subject.
func CompileRegexp2(source string, flags Flags) (Matcher, error) {
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	if flags.Has(IgnoreCase) {
		opts |= regexp2.IgnoreCase
	}
	if flags.Has(Multiline) {
		opts |= regexp2.Multiline
	}
	if flags.Has(DotAll) {
		opts |= regexp2.Singleline
	}
	src := source
	if flags.Has(Unicode) {
		opts |= regexp2.Unicode
	} else {
		src = splitAstral(source)
	}
	re, err := regexp2.Compile(src, opts)
	if err != nil {
		return nil, &CompileError{Source: source, Flags: flags.String(), Err: err}
	}
	m := &regexp2Matcher{
		re:      re,
		unicode: flags.Has(Unicode),
		source:  src,
		opts:    opts,
	}
	m.mapGroups(scanGroups(source))
	return m, nil
}

// splitAstral rewrites every character above U+FFFF as a pair of \uHHHH
// escapes. An identity escape of such a character loses its backslash.
func splitAstral(src string) string {
	i := strings.IndexFunc(src, func(c rune) bool { return c > 0xFFFF })
	if i < 0 {
		return src
	}
	var sb strings.Builder
	sb.Grow(len(src) + 16)
	escaped := false
	for _, c := range src {
		if c <= 0xFFFF {
			if escaped {
				sb.WriteByte('\\')
			}
			escaped = !escaped && c == '\\'
			if !escaped {
				sb.WriteRune(c)
			}
			continue
		}
		escaped = false
		first, second := utf16.EncodeRune(c)
		fmt.Fprintf(&sb, `\u%04X\u%04X`, first, second)
	}
	if escaped {
		sb.WriteByte('\\')
	}
	return sb.String()
}

func (m *regexp2Matcher) mapGroups(scanned []string) {
	nums := m.re.GetGroupNumbers()
	var unnamed []int
	total := 0
	for _, n := range nums {
		if n == 0 {
			continue
		}
		total++
		if m.re.GroupNameFromNumber(n) == strconv.Itoa(n) {
			unnamed = append(unnamed, n)
		}
	}
	if len(scanned)-1 != total {
		// the scanner disagrees with the engine; fall back to engine order
		m.groupNums = []int{0}
		named := false
		names := []string{""}
		for _, n := range nums {
			if n == 0 {
				continue
			}
			m.groupNums = append(m.groupNums, n)
			name := m.re.GroupNameFromNumber(n)
			if name == strconv.Itoa(n) {
				name = ""
			} else {
				named = true
			}
			names = append(names, name)
		}
		if named {
			m.names = names
		}
		return
	}
	m.groupNums = make([]int, len(scanned))
	next := 0
	for k := 1; k < len(scanned); k++ {
		if scanned[k] == "" {
			m.groupNums[k] = unnamed[next]
			next++
		} else {
			m.groupNums[k] = m.re.GroupNumberFromName(scanned[k])
		}
	}
	if hasNames(scanned) {
		m.names = scanned
	}
}

func (m *regexp2Matcher) setMatchTimeout(d time.Duration) {
	if d > 0 {
		m.re.MatchTimeout = d
		if m.sticky != nil {
			m.sticky.MatchTimeout = d
		}
	}
}

// anchoredRe returns the \G-anchored form of the pattern. The wrapper group
// does not capture, so group numbers are those of re.
func (m *regexp2Matcher) anchoredRe() (*regexp2.Regexp, error) {
	if m.sticky == nil {
		re, err := regexp2.Compile(`\G(?:`+m.source+`)`, m.opts)
		if err != nil {
			return nil, err
		}
		re.MatchTimeout = m.re.MatchTimeout
		m.sticky = re
	}
	return m.sticky, nil
}

func (m *regexp2Matcher) GroupCount() int {
	return len(m.groupNums) - 1
}

func (m *regexp2Matcher) GroupNames() []string {
	var res []string
	for _, n := range m.names {
		if n != "" {
			res = append(res, n)
		}
	}
	return res
}

// prepare converts s into engine runes. In unicode mode surrogate pairs
// become one rune and pos maps rune indices back to code-unit offsets; in
// the other mode every code unit is a rune and pos is nil.
func (m *regexp2Matcher) prepare(s unistring.String) ([]rune, []int) {
	if m.cache.valid && m.cache.s == s {
		return m.cache.runes, m.cache.pos
	}
	var runes []rune
	var pos []int
	if units := s.AsUtf16(); units != nil {
		units = units[1:]
		if m.unicode {
			runes = make([]rune, 0, len(units))
			pos = make([]int, 0, len(units)+1)
			for i := 0; i < len(units); i++ {
				pos = append(pos, i)
				c := units[i]
				if unistring.IsHighSurrogate(c) && i+1 < len(units) && unistring.IsLowSurrogate(units[i+1]) {
					runes = append(runes, (rune(c)-0xD800)<<10+(rune(units[i+1])-0xDC00)+0x10000)
					i++
					continue
				}
				runes = append(runes, rune(c))
			}
			pos = append(pos, len(units))
		} else {
			runes = make([]rune, len(units))
			for i, c := range units {
				runes[i] = rune(c)
			}
		}
	} else {
		runes = make([]rune, len(s))
		for i := 0; i < len(s); i++ {
			runes[i] = rune(s[i])
		}
	}
	m.cache.s, m.cache.runes, m.cache.pos, m.cache.valid = s, runes, pos, true
	return runes, pos
}

func (m *regexp2Matcher) Search(s unistring.String, from int, anchored bool) (*Match, error) {
	runes, pos := m.prepare(s)
	start := from
	if pos != nil {
		// an offset inside a surrogate pair refers to the pair
		start = sort.Search(len(pos), func(i int) bool { return pos[i] > from }) - 1
	}
	if start < 0 || start > len(runes) {
		return nil, nil
	}
	re := m.re
	if anchored {
		var err error
		if re, err = m.anchoredRe(); err != nil {
			return nil, err
		}
	}
	res, err := re.FindRunesMatchStartingAt(runes, start)
	if err != nil {
		return nil, err
	}
	if res == nil || anchored && res.Index != start {
		return nil, nil
	}
	offsets := make([]int, 2*len(m.groupNums))
	for k, n := range m.groupNums {
		g := res.GroupByNumber(n)
		if g == nil || len(g.Captures) == 0 {
			offsets[2*k], offsets[2*k+1] = -1, -1
			continue
		}
		b, e := g.Index, g.Index+g.Length
		if pos != nil {
			b, e = pos[b], pos[e]
		}
		offsets[2*k], offsets[2*k+1] = b, e
	}
	return NewMatch(s, offsets, m.names), nil
}
