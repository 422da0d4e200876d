package gojarx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchAllDoesNotTouchOriginal(t *testing.T) {
	r := NewRealm()
	rx := r.MustCompile("a", "g")
	it, err := r.MatchAll(rx, str("aaa"))
	require.NoError(t, err)
	ms, err := it.Collect()
	require.NoError(t, err)
	assert.Len(t, ms, 3)
	li, _ := rx.LastIndex()
	assert.EqualValues(t, 0, li)
}

func TestMatchAllUnicodeEmptyMatches(t *testing.T) {
	r := NewRealm()
	it, err := r.MatchAll(r.MustCompile("", "gu"), str("\U0001F600"))
	require.NoError(t, err)
	ms, err := it.Collect()
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, 0, ms[0].Index())
	assert.Equal(t, 2, ms[1].Index())
}

func TestMatchAllIsLazy(t *testing.T) {
	r := NewRealm()
	rx := r.MustCompile(`\d`, "g")
	it, err := r.MatchAll(rx, str("1a2"))
	require.NoError(t, err)

	m, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1", m.Matched().String())
	assert.False(t, it.Done())

	_, ok, err = it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = it.Next()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, it.Done())
}

func TestMatchAllGroups(t *testing.T) {
	r := NewRealm()
	it, err := r.MatchAll(r.MustCompile(`(?<k>\w)=(\w)`, "g"), str("a=1,b=2"))
	require.NoError(t, err)
	ms, err := it.Collect()
	require.NoError(t, err)
	require.Len(t, ms, 2)
	v, ok := ms[1].NamedGroup("k")
	assert.True(t, ok)
	assert.Equal(t, "b", v.String())
	v, _ = ms[1].Group(2)
	assert.Equal(t, "2", v.String())
}

func TestMatchAllExecErrorEndsIteration(t *testing.T) {
	r := NewRealm()
	rx := r.MustCompile("a", "g")
	frozen := r.MustCompile("a", "g")
	frozen.FreezeLastIndex()
	inner := &foreign{r: r, flags: "g"}
	inner.clone = func(flags string) (Object, error) {
		return frozen, nil
	}
	_, err := r.MatchAll(cloningForeign{inner}, str("a"))
	assert.ErrorIs(t, err, ErrLastIndexReadOnly)

	it, err := r.MatchAll(rx, str("a"))
	require.NoError(t, err)
	it.matcher.(*RegExp).FreezeLastIndex()
	_, ok, err := it.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrLastIndexReadOnly)
	assert.True(t, it.Done())
}
