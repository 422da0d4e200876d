package gojarx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanGroups(t *testing.T) {
	for _, c := range []struct {
		src  string
		want []string
	}{
		{"abc", []string{""}},
		{"(a)(b)", []string{"", "", ""}},
		{"(?:a)(b)", []string{"", ""}},
		{"(?<x>a)(b)(?<y>c)", []string{"", "x", "", "y"}},
		{"(?=a)(?!b)(?<=c)(?<!d)", []string{""}},
		{`\((a)[(]`, []string{"", ""}},
		{`[\]()](b)`, []string{"", ""}},
	} {
		assert.Equal(t, c.want, scanGroups(c.src), c.src)
	}
}

func TestRegexp2NamedGroupOrder(t *testing.T) {
	m, err := CompileRegexp2(`(?<year>\d{4})-(\d{2})-(?<day>\d{2})`, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, m.GroupCount())
	assert.Equal(t, []string{"year", "day"}, m.GroupNames())

	match, err := m.Search(str("on 2024-05-17"), 0, false)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 3, match.Index())

	for i, want := range []string{"2024-05-17", "2024", "05", "17"} {
		v, ok := match.Group(i)
		assert.True(t, ok)
		assert.Equal(t, want, v.String(), "group %d", i)
	}
	v, ok := match.NamedGroup("day")
	assert.True(t, ok)
	assert.Equal(t, "17", v.String())
	start, end := match.Span(1)
	assert.Equal(t, 3, start)
	assert.Equal(t, 7, end)
	assert.Equal(t, []string{"year", "day"}, match.GroupNames())
}

func TestRegexp2Anchored(t *testing.T) {
	m, err := CompileRegexp2("b", 0)
	require.NoError(t, err)
	match, err := m.Search(str("abb"), 0, true)
	require.NoError(t, err)
	assert.Nil(t, match)
	match, err = m.Search(str("abb"), 2, true)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 2, match.Index())
}

func TestRegexp2UnicodeOffsets(t *testing.T) {
	s := str("\U0001F600x\U0001F600y")

	m, err := CompileRegexp2("y", Unicode)
	require.NoError(t, err)
	match, err := m.Search(s, 0, false)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 5, match.Index())
	assert.Equal(t, 6, match.End())

	m, err = CompileRegexp2(".", Unicode)
	require.NoError(t, err)
	match, err = m.Search(s, 1, false)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 0, match.Index())
	assert.Equal(t, 2, match.Matched().Length())

	m, err = CompileRegexp2(".", 0)
	require.NoError(t, err)
	match, err = m.Search(s, 1, false)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 1, match.Index())
	assert.Equal(t, 1, match.Matched().Length())
}

func TestRegexp2Flags(t *testing.T) {
	m, err := CompileRegexp2("^b.c$", IgnoreCase|Multiline|DotAll)
	require.NoError(t, err)
	match, err := m.Search(str("a\nB\nC"), 0, false)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 2, match.Index())
}

func TestRegexp2CachedSubject(t *testing.T) {
	m, err := CompileRegexp2("a", 0)
	require.NoError(t, err)
	rm := m.(*regexp2Matcher)
	s := str("banana")
	for _, want := range []int{1, 3, 5} {
		match, err := m.Search(s, want, false)
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, want, match.Index())
	}
	assert.True(t, rm.cache.valid)
	assert.Equal(t, s, rm.cache.s)

	match, err := m.Search(str("xa"), 0, false)
	require.NoError(t, err)
	assert.Equal(t, 1, match.Index())
}

func TestRealmMatchTimeout(t *testing.T) {
	r := NewRealm(WithMatchTimeout(50 * time.Millisecond))
	rx := r.MustCompile("a", "")
	assert.Equal(t, 50*time.Millisecond, rx.Matcher().(*regexp2Matcher).re.MatchTimeout)
}

func TestRegexp2AnchoredUsesStickyForm(t *testing.T) {
	m, err := CompileRegexp2("a|,", 0)
	require.NoError(t, err)
	rm := m.(*regexp2Matcher)

	match, err := m.Search(str("ab,"), 1, true)
	require.NoError(t, err)
	assert.Nil(t, match)
	require.NotNil(t, rm.sticky)

	match, err = m.Search(str("ab,"), 2, true)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 2, match.Index())

	// the alternation stays inside the anchor
	match, err = m.Search(str("xa"), 0, true)
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestRegexp2AnchoredKeepsGroups(t *testing.T) {
	m, err := CompileRegexp2(`(?<k>\w)(\d)`, 0)
	require.NoError(t, err)
	match, err := m.Search(str("-a1"), 1, true)
	require.NoError(t, err)
	require.NotNil(t, match)
	v, _ := match.NamedGroup("k")
	assert.Equal(t, "a", v.String())
	v, _ = match.Group(2)
	assert.Equal(t, "1", v.String())
}

func TestSplitLongSubjectWithoutMatch(t *testing.T) {
	r := NewRealm()
	s := strings.Repeat("a", 200000)
	res, err := r.Split(r.MustCompile(",", ""), str(s), -1)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, len(s), res[0].Length())
}

func TestRegexp2UnicodeEscapes(t *testing.T) {
	r := NewRealm()
	m, err := r.Exec(r.MustCompile(`\u{1F600}`, "u"), str("a\U0001F600"))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Index())
	assert.Equal(t, 2, m.Matched().Length())
}

func TestRegexp2AstralLiteralWithoutUnicode(t *testing.T) {
	r := NewRealm()
	s := str("x\U0001F600")

	m, err := r.Exec(r.MustCompile("\U0001F600", ""), s)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Index())
	assert.Equal(t, 2, m.Matched().Length())

	// a class holds the two halves separately
	m, err = r.Exec(r.MustCompile("[\U0001F600]", ""), s)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Index())
	assert.Equal(t, 1, m.Matched().Length())

	m, err = r.Exec(r.MustCompile("[\U0001F600]", "u"), s)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 2, m.Matched().Length())
}

func TestSplitAstral(t *testing.T) {
	for _, c := range []struct {
		src, want string
	}{
		{"abc", "abc"},
		{"\U0001F600", `\uD83D\uDE00`},
		{"[\U0001F600]+", `[\uD83D\uDE00]+`},
		{"\\\U0001F600", `\uD83D\uDE00`},
		{`\\` + "\U0001F600", `\\\uD83D\uDE00`},
		{`\d` + "\U0001F600" + `\`, `\d\uD83D\uDE00\`},
	} {
		assert.Equal(t, c.want, splitAstral(c.src), c.src)
	}
}
