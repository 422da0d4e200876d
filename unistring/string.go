// Package unistring contains the string type the matcher subsystem indexes
// by UTF-16 code units.
package unistring

import (
	"unicode/utf16"
	"unicode/utf8"
	"unsafe"
)

const (
	BOM = 0xFEFF
)

// String is either plain ASCII text or a BOM-prefixed sequence of UTF-16
// code units stored in the bytes of a Go string. All offsets accepted and
// returned by this package are code-unit offsets.
type String string

func NewFromString(s string) String {
	ascii := true
	size := 0
	for _, c := range s {
		if c >= utf8.RuneSelf {
			ascii = false
			if c > 0xFFFF {
				size++
			}
		}
		size++
	}
	if ascii {
		return String(s)
	}
	b := make([]uint16, size+1)
	b[0] = BOM
	i := 1
	for _, c := range s {
		if c <= 0xFFFF {
			b[i] = uint16(c)
		} else {
			first, second := utf16.EncodeRune(c)
			b[i] = uint16(first)
			i++
			b[i] = uint16(second)
		}
		i++
	}
	return FromUtf16(b)
}

func NewFromRunes(s []rune) String {
	ascii := true
	size := 0
	for _, c := range s {
		if c >= utf8.RuneSelf {
			ascii = false
			if c > 0xFFFF {
				size++
			}
		}
		size++
	}
	if ascii {
		return String(s)
	}
	b := make([]uint16, size+1)
	b[0] = BOM
	i := 1
	for _, c := range s {
		if c <= 0xFFFF {
			b[i] = uint16(c)
		} else {
			first, second := utf16.EncodeRune(c)
			b[i] = uint16(first)
			i++
			b[i] = uint16(second)
		}
		i++
	}
	return FromUtf16(b)
}

// FromUtf16 wraps b, which must start with BOM, without copying.
func FromUtf16(b []uint16) String {
	if len(b) == 0 {
		return ""
	}
	return String(unsafe.String((*byte)(unsafe.Pointer(&b[0])), len(b)*2))
}

// FromUnits builds a String from bare code units (no BOM). Pure ASCII input
// produces the compact representation.
func FromUnits(units []uint16) String {
	ascii := true
	for _, u := range units {
		if u >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		b := make([]byte, len(units))
		for i, u := range units {
			b[i] = byte(u)
		}
		return String(b)
	}
	b := make([]uint16, len(units)+1)
	b[0] = BOM
	copy(b[1:], units)
	return FromUtf16(b)
}

func (s String) String() string {
	if b := s.AsUtf16(); b != nil {
		return string(utf16.Decode(b[1:]))
	}

	return string(s)
}

// AsUtf16 returns the BOM-prefixed code units backing s, or nil if s is
// ASCII.
func (s String) AsUtf16() []uint16 {
	if len(s) < 4 || len(s)&1 != 0 {
		return nil
	}
	raw := string(s)
	a := unsafe.Slice((*uint16)(unsafe.Pointer(unsafe.StringData(raw))), len(raw)/2)
	if a[0] == BOM {
		return a
	}

	return nil
}

// Length is the number of UTF-16 code units.
func (s String) Length() int {
	if b := s.AsUtf16(); b != nil {
		return len(b) - 1
	}
	return len(s)
}

func (s String) CharAt(i int) uint16 {
	if b := s.AsUtf16(); b != nil {
		return b[i+1]
	}
	return uint16(s[i])
}

// Units returns the code units of s without the BOM. The result must not be
// modified when s is not ASCII.
func (s String) Units() []uint16 {
	if b := s.AsUtf16(); b != nil {
		return b[1:]
	}
	u := make([]uint16, len(s))
	for i := 0; i < len(s); i++ {
		u[i] = uint16(s[i])
	}
	return u
}

func (s String) Substring(start, end int) String {
	if start >= end {
		return ""
	}
	if b := s.AsUtf16(); b != nil {
		return FromUnits(b[start+1 : end+1])
	}
	return s[start:end]
}

func (s String) Concat(other String) String {
	if s == "" {
		return other
	}
	if other == "" {
		return s
	}
	var sb Builder
	sb.Grow(s.Length() + other.Length())
	sb.WriteString(s)
	sb.WriteString(other)
	return sb.String()
}

func IsHighSurrogate(c uint16) bool {
	return c >= 0xD800 && c <= 0xDBFF
}

func IsLowSurrogate(c uint16) bool {
	return c >= 0xDC00 && c <= 0xDFFF
}

// AdvanceIndex returns the offset following pos. With unicode set, a
// well-formed surrogate pair starting at pos is stepped over as a whole.
func AdvanceIndex(s String, pos int64, unicode bool) int64 {
	next := pos + 1
	if !unicode {
		return next
	}
	l := int64(s.Length())
	if next >= l {
		return next
	}
	if !IsHighSurrogate(s.CharAt(int(pos))) {
		return next
	}
	if !IsLowSurrogate(s.CharAt(int(next))) {
		return next
	}
	return next + 1
}
