package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert"
	"github.com/kjk/javaprops/properties"
)

func TestFormatEvent(t *testing.T) {
	tm := time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)
	d := FormatEvent(tm, "set", "file", "app.properties", "key", "a:b", "n", 3)
	exp := `#Mon Jan 15 10:30:45 UTC 2024
event=set
file=app.properties
key=a:b
n=3
`
	assert.Equal(t, exp, string(d))

	// events can be read back
	p := properties.New()
	assert.NoError(t, p.Load(bytes.NewReader(d)))
	assert.Equal(t, "set", p.GetDefault("event", ""))
	assert.Equal(t, "3", p.GetDefault("n", ""))
}

func TestLogToDir(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	var got []string
	Init(&Config{
		Dir: dir,
		Out: &buf,
		OnLog: func(s string) {
			got = append(got, s)
		},
	})
	defer Close()

	Logf("hello %s\n", "world")
	Verbose = false
	Verbosef("not logged\n")
	Errorf("bad thing")
	Event("rm", "key", "k")
	Close()

	assert.Equal(t, "hello world\nbad thing\n", buf.String())
	assert.Equal(t, []string{"hello world\n", "bad thing\n"}, got)

	day := time.Now().UTC().Format("2006-01-02") + ".txt"
	d, err := os.ReadFile(filepath.Join(dir, "log", day))
	assert.NoError(t, err)
	assert.Equal(t, "hello world\nbad thing\n", string(d))

	d, err = os.ReadFile(filepath.Join(dir, "errors", day))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(d), "bad thing\n"))
	assert.Contains(t, string(d), "log_test.go")

	d, err = os.ReadFile(filepath.Join(dir, "events", day))
	assert.NoError(t, err)
	assert.Contains(t, string(d), "event=rm\nkey=k\n")
}

func TestNilWriteDaily(t *testing.T) {
	var w *WriteDaily
	assert.NoError(t, w.WriteString("x"))
	assert.NoError(t, w.Close())
}
