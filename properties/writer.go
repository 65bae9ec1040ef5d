package properties

import (
	"bufio"
	"io"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DateLayout is the layout of the timestamp comment,
// same as Java's Date.toString()
const DateLayout = "Mon Jan 02 15:04:05 MST 2006"

// Writer writes .properties text
type Writer struct {
	w *bufio.Writer

	// NoTimestamp disables writing timestamp comment, which
	// makes output not depend on when it was written
	NoTimestamp bool

	// UTF8 writes UTF-8 instead of ISO-8859-1. Printable
	// non-ASCII characters are then written as is instead of as \uXXXX
	UTF8 bool

	// Now returns the time written in the header.
	// If nil, we use time.Now
	Now func() time.Time

	enc *encoding.Encoder
	sb  strings.Builder
}

// NewWriter creates a writer. Call Flush() when done
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:   bufio.NewWriter(w),
		enc: charmap.ISO8859_1.NewEncoder(),
	}
}

func (w *Writer) writeString(s string) error {
	if w.UTF8 {
		_, err := w.w.WriteString(s)
		return ioErr("write", err)
	}
	// characters > 0xff are escaped before we get here
	d, err := w.enc.String(s)
	panicIfErr(err, "unexpected character in '%s'", s)
	_, err = w.w.WriteString(d)
	return ioErr("write", err)
}

func (w *Writer) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// WriteHeader writes timestamp comment (unless NoTimestamp)
// and comments (if not empty)
func (w *Writer) WriteHeader(comments string) error {
	if !w.NoTimestamp {
		s := "#" + w.now().Format(DateLayout) + "\n"
		if err := w.writeString(s); err != nil {
			return err
		}
	}
	if comments == "" {
		return nil
	}
	return w.WriteComments(comments)
}

// WriteComments writes comments as one or more '#' lines.
// Line breaks in comments start a new line, which is prefixed
// with '#' unless it already starts with '#' or '!'
func (w *Writer) WriteComments(comments string) error {
	sb := &w.sb
	sb.Reset()
	sb.WriteByte('#')
	rs := []rune(comments)
	n := len(rs)
	for i := 0; i < n; i++ {
		c := rs[i]
		switch {
		case c == '\n' || c == '\r':
			sb.WriteByte('\n')
			if c == '\r' && i+1 < n && rs[i+1] == '\n' {
				i++
			}
			if i == n-1 || (rs[i+1] != '#' && rs[i+1] != '!') {
				sb.WriteByte('#')
			}
		case c > 0xff && !w.UTF8:
			writeUnicodeEscape(sb, c)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('\n')
	return w.writeString(sb.String())
}

// WriteEntry writes a "key=value" line
func (w *Writer) WriteEntry(key, value string) error {
	asciiOnly := !w.UTF8
	sb := &w.sb
	sb.Reset()
	sb.WriteString(escape(key, true, asciiOnly))
	sb.WriteByte('=')
	sb.WriteString(escape(value, false, asciiOnly))
	sb.WriteByte('\n')
	return w.writeString(sb.String())
}

// Flush writes buffered data to the underlying writer
func (w *Writer) Flush() error {
	return ioErr("write", w.w.Flush())
}
