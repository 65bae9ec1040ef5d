package properties

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Reader reads (key, value) entries from .properties text
type Reader struct {
	r *bufio.Reader

	// Strict makes a line with a key but no separator and no value
	// an error. By default it's a key with an empty value
	Strict bool

	// Key / Value are available after ReadNextEntry().
	// They are over-written in next ReadNextEntry()
	Key   string
	Value string

	// Line is the 1-based number of the line where the current
	// entry starts
	Line int

	// number of natural lines read so far
	lineNo int

	// re-used between lines
	lineBuf strings.Builder

	err error

	// true if reached end of input with io.EOF
	done bool
}

// NewReader creates a reader for ISO-8859-1 encoded data,
// which is what Java's Properties.load(InputStream) expects
func NewReader(r io.Reader) *Reader {
	return NewReaderEncoding(r, charmap.ISO8859_1)
}

// NewReaderEncoding creates a reader for data in a given encoding
// e.g. unicode.UTF8
func NewReaderEncoding(r io.Reader, enc encoding.Encoding) *Reader {
	return &Reader{
		r: bufio.NewReader(enc.NewDecoder().Reader(r)),
	}
}

// Done returns true if we're finished reading
func (r *Reader) Done() bool {
	return r.err != nil || r.done
}

// Err returns the first error. It's nil if we stopped
// because we reached end of input
func (r *Reader) Err() error {
	return r.err
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f'
}

func trimLeadingWhitespace(s string) string {
	return strings.TrimLeft(s, " \t\f")
}

// readNaturalLine reads a line terminated by "\n", "\r" or "\r\n"
// (terminator not included). Returns false if there are no more lines.
func (r *Reader) readNaturalLine() (string, bool) {
	if r.Done() {
		return "", false
	}
	sb := &r.lineBuf
	sb.Reset()
	gotAny := false
	for {
		c, _, err := r.r.ReadRune()
		if err != nil {
			if err != io.EOF {
				r.err = ioErr("read", err)
				return "", false
			}
			r.done = true
			if !gotAny {
				return "", false
			}
			break
		}
		gotAny = true
		if c == '\n' {
			break
		}
		if c == '\r' {
			next, _, err := r.r.ReadRune()
			if err == nil && next != '\n' {
				_ = r.r.UnreadRune()
			} else if err != nil && err != io.EOF {
				r.err = ioErr("read", err)
				return "", false
			}
			break
		}
		sb.WriteRune(c)
	}
	r.lineNo++
	return sb.String(), true
}

// odd number of trailing backslashes means the line continues
func endsWithContinuation(s string) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// ReadNextEntry reads the next (key, value) entry, returns false
// when there are no more entries. If returns false, check Err() to see
// if there were errors.
// Blank lines and comment lines (starting with '#' or '!') are skipped.
func (r *Reader) ReadNextEntry() bool {
	var s string
	for {
		line, ok := r.readNaturalLine()
		if !ok {
			return false
		}
		s = trimLeadingWhitespace(line)
		if s == "" || s[0] == '#' || s[0] == '!' {
			continue
		}
		break
	}
	r.Line = r.lineNo

	if endsWithContinuation(s) {
		var logical strings.Builder
		for endsWithContinuation(s) {
			logical.WriteString(s[:len(s)-1])
			line, ok := r.readNaturalLine()
			if !ok {
				if r.err != nil {
					return false
				}
				// continuation at the end of input
				s = ""
				break
			}
			s = trimLeadingWhitespace(line)
		}
		logical.WriteString(s)
		s = logical.String()
	}
	return r.parseEntry(s)
}

// parseEntry splits a logical line into key and value.
// The key ends at the first unescaped '=', ':' or whitespace.
// Then we skip whitespace, at most one '=' or ':' and whitespace again.
func (r *Reader) parseEntry(line string) bool {
	n := len(line)
	keyLen := 0
	valueStart := n
	hasSep := false
	precedingBackslash := false
	for keyLen < n {
		c := line[keyLen]
		if !precedingBackslash {
			if c == '=' || c == ':' {
				valueStart = keyLen + 1
				hasSep = true
				break
			}
			if isWhitespace(c) {
				valueStart = keyLen + 1
				break
			}
		}
		if c == '\\' {
			precedingBackslash = !precedingBackslash
		} else {
			precedingBackslash = false
		}
		keyLen++
	}
	if r.Strict && keyLen == n {
		r.err = &FormatError{Line: r.Line, Msg: "missing '=' or ':' after key"}
		return false
	}
	for valueStart < n {
		c := line[valueStart]
		if !isWhitespace(c) {
			if !hasSep && (c == '=' || c == ':') {
				hasSep = true
			} else {
				break
			}
		}
		valueStart++
	}

	key, err := Unescape(line[:keyLen])
	if err != nil {
		r.setFormatErr(err)
		return false
	}
	val, err := Unescape(line[valueStart:])
	if err != nil {
		r.setFormatErr(err)
		return false
	}
	r.Key = key
	r.Value = val
	return true
}

func (r *Reader) setFormatErr(err error) {
	if fe, ok := err.(*FormatError); ok {
		fe.Line = r.Line
	}
	r.err = err
}
