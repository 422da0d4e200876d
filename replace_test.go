package gojarx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dop251/gojarx/unistring"
)

func TestReplaceFuncArguments(t *testing.T) {
	r := NewRealm()
	rx := r.MustCompile(`(?<k>\w)=(\d)?`, "g")
	var calls []ReplaceCall
	res, err := r.ReplaceFunc(rx, str("a=1 b="), func(call ReplaceCall) (unistring.String, error) {
		calls = append(calls, call)
		return str("<" + call.Matched.String() + ">"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "<a=1> <b=>", res.String())

	require.Len(t, calls, 2)
	assert.Equal(t, 0, calls[0].Position)
	assert.Equal(t, 4, calls[1].Position)
	assert.Equal(t, "a=1 b=", calls[1].Input.String())
	require.Len(t, calls[1].Captures, 2)
	assert.Equal(t, "b", calls[1].Captures[0].Value.String())
	assert.False(t, calls[1].Captures[1].Defined)
	require.NotNil(t, calls[1].Groups)
	assert.Equal(t, "b", calls[1].Groups["k"].Value.String())
}

func TestReplaceFuncWithoutNamedGroups(t *testing.T) {
	r := NewRealm()
	rx := r.MustCompile("(b)", "")
	_, err := r.ReplaceFunc(rx, str("abc"), func(call ReplaceCall) (unistring.String, error) {
		assert.Nil(t, call.Groups)
		return "", nil
	})
	require.NoError(t, err)
}

func TestReplaceFuncError(t *testing.T) {
	r := NewRealm()
	boom := errors.New("boom")
	_, err := r.ReplaceFunc(r.MustCompile("a", "g"), str("aa"), func(call ReplaceCall) (unistring.String, error) {
		return "", boom
	})
	assert.Same(t, boom, err)
}

func TestReplaceFuncReentrant(t *testing.T) {
	r := NewRealm()
	rx := r.MustCompile("a", "g")
	res, err := r.ReplaceFunc(rx, str("aXa"), func(call ReplaceCall) (unistring.String, error) {
		// the matches were collected before the first callback runs
		require.NoError(t, rx.SetLastIndex(100))
		n, err := r.Search(rx, str("ba"))
		if err != nil {
			return "", err
		}
		return str(string(rune('0' + n))), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "1X1", res.String())
	li, _ := rx.LastIndex()
	assert.EqualValues(t, 100, li)
}

func TestReplaceNonGlobalKeepsLastIndex(t *testing.T) {
	r := NewRealm()
	rx := r.MustCompile("a", "")
	require.NoError(t, rx.SetLastIndex(7))
	res, err := r.Replace(rx, str("banana"), str("o"))
	require.NoError(t, err)
	assert.Equal(t, "bonana", res.String())
	li, _ := rx.LastIndex()
	assert.EqualValues(t, 7, li)
}

func TestReplaceStickyUpdatesLastIndex(t *testing.T) {
	r := NewRealm()
	rx := r.MustCompile("a", "y")
	require.NoError(t, rx.SetLastIndex(1))
	res, err := r.Replace(rx, str("banana"), str("o"))
	require.NoError(t, err)
	assert.Equal(t, "bonana", res.String())
	li, _ := rx.LastIndex()
	assert.EqualValues(t, 2, li)
}

func TestReplaceMatchedIdentity(t *testing.T) {
	r := NewRealm()
	for _, c := range []struct{ pattern, flags, input string }{
		{"a+", "g", "baaac aa"},
		{"x*", "g", "xyz"},
		{"\\w+", "gu", "\U0001F600 ok \U0001F600"},
		{"(z)?", "g", "z1z"},
	} {
		rx := r.MustCompile(c.pattern, c.flags)
		res, err := r.Replace(rx, str(c.input), str("$&"))
		require.NoError(t, err)
		assert.Equal(t, c.input, res.String(), c.pattern)
	}
}

func TestReplaceUnicodeInput(t *testing.T) {
	r := NewRealm()
	rx := r.MustCompile(".", "gu")
	res, err := r.Replace(rx, str("a\U0001F600"), str("[$&]"))
	require.NoError(t, err)
	assert.Equal(t, "[a][\U0001F600]", res.String())

	rx = r.MustCompile("\\uD83D", "g")
	res, err = r.Replace(rx, str("\U0001F600"), str(""))
	require.NoError(t, err)
	assert.Equal(t, []uint16{0xDE00}, res.AsUtf16()[1:])
}

func TestReplaceCoercedGroups(t *testing.T) {
	r := NewRealm()
	f := &foreign{
		r: r,
		exec: scripted(&fakeResult{
			index:  1,
			elems:  []string{"b", "B"},
			groups: map[string]Capture{"up": {Value: str("B"), Defined: true}},
		}),
	}
	res, err := r.Replace(f, str("abc"), str("$<up>$1$2"))
	require.NoError(t, err)
	assert.Equal(t, "aBB$2c", res.String())
}

func TestExpandSubstitution(t *testing.T) {
	captures := []Capture{
		{Value: str("1"), Defined: true},
		{},
		{Value: str("3"), Defined: true},
	}
	groups := map[string]Capture{"n": {Value: str("N"), Defined: true}}
	for _, c := range []struct {
		template, want string
	}{
		{"$1$2$3", "13"},
		{"$01$03", "13"},
		{"$00", "$00"},
		{"$4", "$4"},
		{"$31", "31"},
		{"$<n>", "N"},
		{"$<m>", ""},
		{"$<n", "$<n"},
		{"$`$'", "xy"},
		{"$", "$"},
		{"$x", "$x"},
		{"$$1", "$1"},
	} {
		got := ExpandSubstitution(str("xMy"), 1, str("M"), captures, groups, str(c.template))
		assert.Equal(t, c.want, got.String(), c.template)
	}
}
