package properties

import (
	"bytes"
	"slices"
	"testing"

	"github.com/alecthomas/assert"
	mprops "github.com/magiconair/properties"
)

// magiconair/properties is an independent implementation of the format.
// Its ISO-8859-1 writer emits characters 0x80-0xff as UTF-8 so the
// tests below only use ASCII or characters above 0xff in that direction

func TestInteropStoreReadByMagiconair(t *testing.T) {
	vals := map[string]string{
		"a:b":          "hello=world",
		"key with sp":  "value with sp",
		"unicode":      "café € ünïcödé",
		"path":         `c:\windows\system32`,
		"multi":        "line1\nline2",
		"#hash":        "!bang",
		"url":          "http://example.com/?a=b&c=d",
		"leadingSpace": " x",
	}
	p := New()
	for k, v := range vals {
		p.Set(k, v)
	}
	var buf bytes.Buffer
	err := p.Store(&buf, "written by interop test")
	assert.NoError(t, err)

	l := &mprops.Loader{Encoding: mprops.ISO_8859_1, DisableExpansion: true}
	mp, err := l.LoadBytes(buf.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, len(vals), mp.Len())
	for k, v := range vals {
		got, ok := mp.Get(k)
		assert.True(t, ok, "key: %q", k)
		assert.Equal(t, v, got, "key: %q", k)
	}
}

func TestInteropLoadWrittenByMagiconair(t *testing.T) {
	mp := mprops.NewProperties()
	mp.DisableExpansion = true
	vals := map[string]string{
		"price":    "5 €",
		"greeting": "hello world",
		"eq":       "a=b",
		"colon":    "x:y",
	}
	for k, v := range vals {
		_, _, err := mp.Set(k, v)
		assert.NoError(t, err)
	}
	var buf bytes.Buffer
	_, err := mp.Write(&buf, mprops.ISO_8859_1)
	assert.NoError(t, err)

	p := New()
	err = p.Load(&buf)
	assert.NoError(t, err)
	assert.Equal(t, len(vals), p.Len())
	for k, v := range vals {
		assert.Equal(t, v, p.GetDefault(k, "<missing>"), "key: %q", k)
	}
}

func TestInteropJavaStyleInput(t *testing.T) {
	s := `# typical hand-written file
! with both comment styles
server.host = example.com
server.port: 8080
message = first line \
          second line
path = c:\\temp
title = Caf\u00e9
`
	p := New()
	err := p.LoadString(s)
	assert.NoError(t, err)

	l := &mprops.Loader{Encoding: mprops.UTF8, DisableExpansion: true}
	mp, err := l.LoadBytes([]byte(s))
	assert.NoError(t, err)

	keys := mp.Keys()
	slices.Sort(keys)
	assert.Equal(t, keys, p.Keys())
	for _, k := range keys {
		exp, _ := mp.Get(k)
		assert.Equal(t, exp, p.GetDefault(k, ""), "key: %q", k)
	}
}
