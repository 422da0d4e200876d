package unistring

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Builder accumulates code units. It stays in single-byte mode until a
// non-ASCII unit is written.
type Builder struct {
	ascii   []byte
	unicode []uint16
	wide    bool
}

func (b *Builder) Grow(n int) {
	if b.wide {
		if cap(b.unicode)-len(b.unicode) < n {
			u := make([]uint16, len(b.unicode), len(b.unicode)+n)
			copy(u, b.unicode)
			b.unicode = u
		}
		return
	}
	if cap(b.ascii)-len(b.ascii) < n {
		a := make([]byte, len(b.ascii), len(b.ascii)+n)
		copy(a, b.ascii)
		b.ascii = a
	}
}

func (b *Builder) Len() int {
	if b.wide {
		return len(b.unicode) - 1
	}
	return len(b.ascii)
}

func (b *Builder) switchToWide(extra int) {
	u := make([]uint16, 0, len(b.ascii)+extra+1)
	u = append(u, BOM)
	for _, c := range b.ascii {
		u = append(u, uint16(c))
	}
	b.unicode = u
	b.ascii = nil
	b.wide = true
}

func (b *Builder) WriteString(s String) {
	if units := s.AsUtf16(); units != nil {
		if !b.wide {
			b.switchToWide(len(units))
		}
		b.unicode = append(b.unicode, units[1:]...)
		return
	}
	b.WriteASCII(string(s))
}

// WriteASCII appends s, which must consist of single-byte characters.
func (b *Builder) WriteASCII(s string) {
	if b.wide {
		for i := 0; i < len(s); i++ {
			b.unicode = append(b.unicode, uint16(s[i]))
		}
		return
	}
	b.ascii = append(b.ascii, s...)
}

func (b *Builder) WriteUnit(c uint16) {
	if !b.wide {
		if c < utf8.RuneSelf {
			b.ascii = append(b.ascii, byte(c))
			return
		}
		b.switchToWide(1)
	}
	b.unicode = append(b.unicode, c)
}

func (b *Builder) WriteUnits(units []uint16) {
	for _, c := range units {
		b.WriteUnit(c)
	}
}

func (b *Builder) WriteRune(r rune) {
	if r <= 0xFFFF {
		b.WriteUnit(uint16(r))
		return
	}
	first, second := utf16.EncodeRune(r)
	b.WriteUnit(uint16(first))
	b.WriteUnit(uint16(second))
}

func (b *Builder) String() String {
	if b.wide {
		return FromUtf16(b.unicode)
	}
	return String(b.ascii)
}
