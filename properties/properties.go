package properties

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Table maps keys to values. Both are always strings
type Table map[string]string

type Entry struct {
	Key   string
	Value string
}

// Properties is a string to string table with optional defaults.
// Lookups that miss the table are resolved against defaults
// at the time of the lookup, so changes made to defaults later
// are visible.
// Not safe for concurrent use.
type Properties struct {
	table    Table
	defaults *Properties
}

// New creates an empty Properties without defaults
func New() *Properties {
	return &Properties{
		table: Table{},
	}
}

// NewWithDefaults creates an empty Properties that falls back
// to defaults. defaults is not copied and never modified by p
func NewWithDefaults(defaults *Properties) *Properties {
	return &Properties{
		table:    Table{},
		defaults: defaults,
	}
}

// Defaults returns defaults given to NewWithDefaults, can be nil
func (p *Properties) Defaults() *Properties {
	return p.defaults
}

// Get returns value of the key, looking at defaults if it's
// not set. Returns false if the key is not set anywhere.
func (p *Properties) Get(key string) (string, bool) {
	if v, ok := p.table[key]; ok {
		return v, true
	}
	if p.defaults != nil {
		return p.defaults.Get(key)
	}
	return "", false
}

// GetDefault is like Get but returns defaultValue if key is not set
func (p *Properties) GetDefault(key string, defaultValue string) string {
	if v, ok := p.Get(key); ok {
		return v
	}
	return defaultValue
}

// Set sets the value. Returns previous value and true if key
// was set before (ignoring defaults)
func (p *Properties) Set(key string, value string) (string, bool) {
	prev, ok := p.table[key]
	p.table[key] = value
	return prev, ok
}

// Remove removes the key (but not from defaults).
// Returns removed value and true if key was set
func (p *Properties) Remove(key string) (string, bool) {
	prev, ok := p.table[key]
	if ok {
		delete(p.table, key)
	}
	return prev, ok
}

// Len returns number of keys set, not counting defaults
func (p *Properties) Len() int {
	return len(p.table)
}

// Keys returns sorted keys, not counting defaults
func (p *Properties) Keys() []string {
	return slices.Sorted(maps.Keys(p.table))
}

// Entries returns entries sorted by key, not counting defaults
func (p *Properties) Entries() []Entry {
	keys := p.Keys()
	res := make([]Entry, len(keys))
	for i, k := range keys {
		res[i] = Entry{Key: k, Value: p.table[k]}
	}
	return res
}

func (p *Properties) collectNames(seen map[string]struct{}) {
	if p.defaults != nil {
		p.defaults.collectNames(seen)
	}
	for k := range p.table {
		seen[k] = struct{}{}
	}
}

// Names returns sorted names of all keys for which Get succeeds
// i.e. keys in p and in defaults.
// The result is a snapshot, not affected by later changes.
func (p *Properties) Names() []string {
	seen := map[string]struct{}{}
	p.collectNames(seen)
	return slices.Sorted(maps.Keys(seen))
}

// All iterates over a snapshot of all visible keys (see Names)
// and their values
func (p *Properties) All() iter.Seq2[string, string] {
	names := p.Names()
	vals := make([]string, len(names))
	for i, k := range names {
		vals[i], _ = p.Get(k)
	}
	return func(yield func(string, string) bool) {
		for i, k := range names {
			if !yield(k, vals[i]) {
				return
			}
		}
	}
}

// Load reads ISO-8859-1 encoded entries from r and sets them.
// Later duplicate keys over-write earlier ones.
// On error, entries read before the error are already set.
// Doesn't close r.
func (p *Properties) Load(r io.Reader) error {
	return p.LoadFrom(NewReader(r))
}

// LoadString is like Load but s is text, not ISO-8859-1 bytes
func (p *Properties) LoadString(s string) error {
	return p.LoadFrom(NewReaderEncoding(strings.NewReader(s), unicode.UTF8))
}

// LoadFrom sets all entries read from r
func (p *Properties) LoadFrom(r *Reader) error {
	for r.ReadNextEntry() {
		p.table[r.Key] = r.Value
	}
	return r.Err()
}

// Store writes entries (without defaults) to w as ISO-8859-1 text
// with timestamp and optional comments in the header.
// Doesn't close w.
func (p *Properties) Store(w io.Writer, comments string) error {
	return p.StoreTo(NewWriter(w), comments)
}

// StoreTo is like Store but allows configuring the Writer
func (p *Properties) StoreTo(w *Writer, comments string) error {
	if err := w.WriteHeader(comments); err != nil {
		return err
	}
	for _, e := range p.Entries() {
		if err := w.WriteEntry(e.Key, e.Value); err != nil {
			return err
		}
	}
	return w.Flush()
}

const listMaxValueLen = 40

// List writes all visible entries (including defaults) in a format
// for debugging. Long values are truncated
func (p *Properties) List(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("-- listing properties --\n")
	for k, v := range p.All() {
		if rs := []rune(v); len(rs) > listMaxValueLen {
			v = string(rs[:listMaxValueLen-3]) + "..."
		}
		fmt.Fprintf(&sb, "%s=%s\n", k, v)
	}
	_, err := io.WriteString(w, sb.String())
	return ioErr("write", err)
}
