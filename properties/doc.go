// Package properties reads and writes Java .properties files
// and provides a string to string table with defaults.
//
// # Format
//
// The files are ISO-8859-1 text, one "key=value" per line.
// Characters outside printable ASCII are written as \uXXXX.
// Lines starting with '#' or '!' are comments. A line ending with
// a backslash continues on the next line.
//
// # Basic Usage
//
//	defaults := properties.New()
//	defaults.Set("color", "blue")
//	p := properties.NewWithDefaults(defaults)
//	err := p.Load(f)
//	color := p.GetDefault("color", "red")
//
//	p.Set("name", "café")
//	err = p.Store(w, "saved by app")
//
// Store writes:
//
//	#Sat Oct 18 10:30:45 UTC 2026
//	#saved by app
//	name=café
//
// Defaults are consulted on every lookup, they are never copied.
package properties
