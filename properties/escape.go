package properties

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Escape converts a value to the form used in .properties files.
// The result only contains printable ASCII.
func Escape(s string) string {
	return escape(s, false, true)
}

// EscapeKey is like Escape but also escapes characters that
// would end a key: '=', ':', '#', '!' and space
func EscapeKey(s string) string {
	return escape(s, true, true)
}

func isKeyDelim(c rune) bool {
	return c == '=' || c == ':' || c == '#' || c == '!'
}

// return true if c must be written as \uXXXX
// if asciiOnly is false, printable non-ASCII characters are written as is
func needsUnicodeEscape(c rune, asciiOnly bool) bool {
	if c < 0x20 || (c >= 0x7f && c <= 0x9f) {
		return true
	}
	return asciiOnly && c > 0x7e
}

func needsEscape(s string, isKey bool, asciiOnly bool) bool {
	for i, c := range s {
		switch {
		case c == '\\':
			return true
		case c == ' ':
			if isKey || i == 0 {
				return true
			}
		case isKeyDelim(c):
			if isKey {
				return true
			}
		case needsUnicodeEscape(c, asciiOnly):
			return true
		}
	}
	return false
}

func writeUnicodeEscape(b *strings.Builder, c rune) {
	if c > 0xffff {
		r1, r2 := utf16.EncodeRune(c)
		writeUnicodeEscape(b, r1)
		writeUnicodeEscape(b, r2)
		return
	}
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[(c>>12)&0xf])
	b.WriteByte(hexDigits[(c>>8)&0xf])
	b.WriteByte(hexDigits[(c>>4)&0xf])
	b.WriteByte(hexDigits[c&0xf])
}

// a leading space in a value is escaped because the reader skips
// whitespace between the separator and the value
func escape(s string, isKey bool, asciiOnly bool) string {
	if !needsEscape(s, isKey, asciiOnly) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i, c := range s {
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\f':
			b.WriteString(`\f`)
		case ' ':
			if isKey || i == 0 {
				b.WriteByte('\\')
			}
			b.WriteByte(' ')
		case '=', ':', '#', '!':
			if isKey {
				b.WriteByte('\\')
			}
			b.WriteRune(c)
		default:
			if needsUnicodeEscape(c, asciiOnly) {
				writeUnicodeEscape(&b, c)
			} else {
				b.WriteRune(c)
			}
		}
	}
	return b.String()
}

func unhex(c byte) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return rune(c - '0'), true
	case c >= 'a' && c <= 'f':
		return rune(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return rune(c-'A') + 10, true
	}
	return 0, false
}

// Unescape reverses Escape and EscapeKey.
// \uXXXX is decoded (UTF-16 surrogate pairs are combined), \t \n \r \f
// are decoded to control characters and a backslash followed by
// any other character is that character.
// Returns *FormatError for a trailing backslash or a malformed \uXXXX.
func Unescape(s string) (string, error) {
	if strings.IndexByte(s, '\\') == -1 {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))

	// high surrogate waiting for its low half, -1 if none
	var pending rune = -1
	flush := func() {
		if pending >= 0 {
			b.WriteRune(utf8.RuneError)
			pending = -1
		}
	}

	n := len(s)
	for i := 0; i < n; {
		c := s[i]
		if c != '\\' {
			flush()
			b.WriteByte(c)
			i++
			continue
		}
		i++
		if i == n {
			return "", &FormatError{Msg: "trailing backslash"}
		}
		c = s[i]
		if c != 'u' {
			flush()
			switch c {
			case 't':
				b.WriteByte('\t')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 'f':
				b.WriteByte('\f')
			default:
				// might be a multi-byte character
				r, size := utf8.DecodeRuneInString(s[i:])
				if r == utf8.RuneError && size == 1 {
					b.WriteByte(c)
				} else {
					b.WriteRune(r)
				}
				i += size
				continue
			}
			i++
			continue
		}

		i++
		if i+4 > n {
			return "", &FormatError{Msg: `malformed \uxxxx encoding`}
		}
		var r rune
		for j := 0; j < 4; j++ {
			v, ok := unhex(s[i+j])
			if !ok {
				return "", &FormatError{Msg: `malformed \uxxxx encoding`}
			}
			r = r<<4 | v
		}
		i += 4

		switch {
		case r >= 0xd800 && r < 0xdc00:
			flush()
			pending = r
		case r >= 0xdc00 && r < 0xe000:
			if pending >= 0 {
				b.WriteRune(utf16.DecodeRune(pending, r))
				pending = -1
			} else {
				b.WriteRune(utf8.RuneError)
			}
		default:
			flush()
			b.WriteRune(r)
		}
	}
	flush()
	return b.String(), nil
}
