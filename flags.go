package gojarx

import (
	"strings"
)

// Flags is the set of modifiers a pattern was compiled with.
type Flags uint8

const (
	Global Flags = 1 << iota
	IgnoreCase
	Multiline
	DotAll
	Unicode
	Sticky
)

var flagLetters = [...]struct {
	f Flags
	c byte
}{
	{Global, 'g'},
	{IgnoreCase, 'i'},
	{Multiline, 'm'},
	{DotAll, 's'},
	{Unicode, 'u'},
	{Sticky, 'y'},
}

// ParseFlags parses a flags string such as "gi". Unknown and repeated
// letters are rejected.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for i := 0; i < len(s); i++ {
		var bit Flags
		for _, l := range flagLetters {
			if l.c == s[i] {
				bit = l.f
				break
			}
		}
		if bit == 0 || f&bit != 0 {
			return 0, &CompileError{Flags: s, Err: ErrInvalidFlags}
		}
		f |= bit
	}
	return f, nil
}

func (f Flags) Has(bit Flags) bool {
	return f&bit != 0
}

func (f Flags) String() string {
	var sb strings.Builder
	for _, l := range flagLetters {
		if f&l.f != 0 {
			sb.WriteByte(l.c)
		}
	}
	return sb.String()
}

// flagsFromString is the lenient reading the generic algorithms apply to
// the result of a "flags" property lookup: only presence of a letter
// matters.
func flagsFromString(s string) Flags {
	var f Flags
	for _, l := range flagLetters {
		if strings.IndexByte(s, l.c) >= 0 {
			f |= l.f
		}
	}
	return f
}
