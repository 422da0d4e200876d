package gojarx

import (
	"time"

	"github.com/dop251/gojarx/unistring"
)

// Matcher is a compiled pattern. Search looks for a match at or after from,
// or exactly at from when anchored is set, and returns nil when there is
// none. Offsets are UTF-16 code units.
type Matcher interface {
	Search(s unistring.String, from int, anchored bool) (*Match, error)
	// GroupCount is the number of capture groups.
	GroupCount() int
	// GroupNames lists the names of the named groups in source order.
	GroupNames() []string
}

// Compiler turns source text into a Matcher. Only IgnoreCase, Multiline,
// DotAll and Unicode are relevant to compilation; Global and Sticky are
// handled by the exec algorithm.
type Compiler func(source string, flags Flags) (Matcher, error)

type timeoutSetter interface {
	setMatchTimeout(d time.Duration)
}

const compileFlags = IgnoreCase | Multiline | DotAll | Unicode

// scanGroups returns the name of every capturing group of an ECMAScript
// pattern in source order. Element 0 stands for the whole match; unnamed
// groups have an empty name.
func scanGroups(src string) []string {
	names := []string{""}
	inClass := false
	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '(':
			if inClass {
				continue
			}
			if i+1 < len(src) && src[i+1] == '?' {
				if i+2 < len(src) && src[i+2] == '<' && i+3 < len(src) && src[i+3] != '=' && src[i+3] != '!' {
					end := i + 3
					for end < len(src) && src[end] != '>' {
						end++
					}
					names = append(names, src[i+3:end])
				}
				continue
			}
			names = append(names, "")
		}
	}
	return names
}

func hasNames(names []string) bool {
	for _, n := range names {
		if n != "" {
			return true
		}
	}
	return false
}
