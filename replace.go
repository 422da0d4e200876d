package gojarx

import (
	"github.com/dop251/gojarx/unistring"
)

// ReplaceCall carries the arguments of a replacement callback.
type ReplaceCall struct {
	Matched  unistring.String
	Captures []Capture
	Position int
	Input    unistring.String
	// Groups is nil when the pattern declares no named groups.
	Groups map[string]Capture
}

// ReplaceFunc computes the replacement for one match. It may run other
// operations, including ones on the pattern being used for the replace.
type ReplaceFunc func(call ReplaceCall) (unistring.String, error)

// Replace substitutes the first match, or every match of a global pattern,
// with the expansion of template.
func (r *Realm) Replace(o Object, s, template unistring.String) (unistring.String, error) {
	return r.replace(o, s, template, nil)
}

// ReplaceFunc is Replace with replacements computed by fn.
func (r *Realm) ReplaceFunc(o Object, s unistring.String, fn ReplaceFunc) (unistring.String, error) {
	return r.replace(o, s, "", fn)
}

func (r *Realm) replace(o Object, s, template unistring.String, fn ReplaceFunc) (unistring.String, error) {
	rx := r.checkStdRegexp(o)
	_, flags, err := readFlags(o, rx)
	if err != nil {
		return "", err
	}

	var found []*Match
	if flags.Has(Global) {
		found, err = r.globalMatches(o, rx, s, flags.Has(Unicode))
	} else {
		var m *Match
		if rx != nil {
			m, err = r.execRegexp(rx, s)
		} else {
			m, err = r.regExpExec(o, s)
		}
		if m != nil {
			found = append(found, m)
		}
	}
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return s, nil
	}
	return stringReplace(s, found, template, fn)
}

func stringReplace(s unistring.String, found []*Match, template unistring.String, fn ReplaceFunc) (unistring.String, error) {
	lengthS := s.Length()
	nextSourcePosition := 0
	var resultBuf unistring.Builder
	for _, m := range found {
		matched := m.Matched()
		matchLength := matched.Length()
		position := int(clampIndex(int64(m.Index()), int64(lengthS)))
		nCaptures := m.GroupCount()
		captures := make([]Capture, nCaptures)
		for n := 1; n <= nCaptures; n++ {
			captures[n-1] = m.capture(n)
		}
		groups, ok := m.MatchGroups()
		if !ok {
			groups = nil
		}
		if fn != nil {
			replacement, err := fn(ReplaceCall{
				Matched:  matched,
				Captures: captures,
				Position: position,
				Input:    s,
				Groups:   groups,
			})
			if err != nil {
				return "", err
			}
			if position >= nextSourcePosition {
				resultBuf.WriteString(s.Substring(nextSourcePosition, position))
				resultBuf.WriteString(replacement)
				nextSourcePosition = position + matchLength
			}
		} else {
			if position >= nextSourcePosition {
				resultBuf.WriteString(s.Substring(nextSourcePosition, position))
				writeSubstitution(&resultBuf, s, position, matched, captures, groups, template)
				nextSourcePosition = position + matchLength
			}
		}
	}
	if nextSourcePosition < lengthS {
		resultBuf.WriteString(s.Substring(nextSourcePosition, lengthS))
	}
	return resultBuf.String(), nil
}
