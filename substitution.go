package gojarx

import (
	"github.com/dop251/gojarx/unistring"
)

func isDigit(c uint16) bool {
	return c >= '0' && c <= '9'
}

// ExpandSubstitution expands a replacement template for a match of matched
// at position in s. captures holds groups 1..n; groups is nil when the
// pattern has no named groups, in which case "$<" is copied literally.
//
// Tokens: $$, $&, $`, $', $n, $nn and $<name>. Anything else, including
// references to groups that do not exist, is copied verbatim.
func ExpandSubstitution(s unistring.String, position int, matched unistring.String, captures []Capture, groups map[string]Capture, template unistring.String) unistring.String {
	var buf unistring.Builder
	writeSubstitution(&buf, s, position, matched, captures, groups, template)
	return buf.String()
}

func writeSubstitution(buf *unistring.Builder, s unistring.String, position int, matched unistring.String, captures []Capture, groups map[string]Capture, template unistring.String) {
	l := s.Length()
	rl := template.Length()
	tailPos := position + matched.Length()
	m := len(captures)

	for i := 0; i < rl; {
		c := template.CharAt(i)
		if c != '$' || i+1 >= rl {
			buf.WriteUnit(c)
			i++
			continue
		}
		switch ch := template.CharAt(i + 1); ch {
		case '$':
			buf.WriteUnit('$')
			i += 2
		case '&':
			buf.WriteString(matched)
			i += 2
		case '`':
			buf.WriteString(s.Substring(0, position))
			i += 2
		case '\'':
			if tailPos < l {
				buf.WriteString(s.Substring(tailPos, l))
			}
			i += 2
		case '<':
			gtPos := -1
			if groups != nil {
				for j := i + 2; j < rl; j++ {
					if template.CharAt(j) == '>' {
						gtPos = j
						break
					}
				}
			}
			if gtPos < 0 {
				buf.WriteASCII("$<")
				i += 2
				continue
			}
			name := template.Substring(i+2, gtPos).String()
			if capture := groups[name]; capture.Defined {
				buf.WriteString(capture.Value)
			}
			i = gtPos + 1
		default:
			if !isDigit(ch) {
				buf.WriteUnit('$')
				i++
				continue
			}
			digitCount := 1
			index := int(ch - '0')
			if i+2 < rl && isDigit(template.CharAt(i+2)) {
				digitCount = 2
				index = index*10 + int(template.CharAt(i+2)-'0')
			}
			if index > m && digitCount == 2 {
				// a two-digit reference past the group count is a one-digit
				// reference followed by a literal digit
				digitCount = 1
				index = int(ch - '0')
			}
			if index >= 1 && index <= m {
				if capture := captures[index-1]; capture.Defined {
					buf.WriteString(capture.Value)
				}
			} else {
				buf.WriteString(template.Substring(i, i+1+digitCount))
			}
			i += 1 + digitCount
		}
	}
}
