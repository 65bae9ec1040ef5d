package u

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert"
)

const testData = "#comment\nkey=value\nother=caf\\u00e9\n"

func writeString(s string) func(w io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestCompressionExt(t *testing.T) {
	tests := []struct {
		path string
		exp  string
	}{
		{"a.properties", ""},
		{"a.properties.gz", ".gz"},
		{"a.properties.GZ", ".gz"},
		{"a.zstd", ".zst"},
		{"a.zst", ".zst"},
		{"a.br", ".br"},
		{"a.bz2", ".bz2"},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, CompressionExt(test.path), "path: %s", test.path)
	}
	assert.Equal(t, "a.properties", TrimCompressionExt("a.properties.zst"))
	assert.Equal(t, "a.properties", TrimCompressionExt("a.properties"))
}

func TestWriteFileAtomicCompressed(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.properties", "a.properties.gz", "a.properties.zst", "a.properties.br"} {
		path := filepath.Join(dir, name)
		err := WriteFileAtomic(path, writeString(testData))
		assert.NoError(t, err)

		raw, err := os.ReadFile(path)
		assert.NoError(t, err)
		if CompressionExt(name) == "" {
			assert.Equal(t, testData, string(raw))
		} else {
			assert.NotEqual(t, testData, string(raw))
		}

		d, err := ReadFileMaybeCompressed(path)
		assert.NoError(t, err)
		assert.Equal(t, testData, string(d), "name: %s", name)
	}

	// no temporary files left behind
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Equal(t, 4, len(entries))
}

func TestWriteFileAtomicError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.properties")
	assert.NoError(t, os.WriteFile(path, []byte("old=1\n"), 0600))

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return io.ErrUnexpectedEOF
	})
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	d, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "old=1\n", string(d))
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(entries))

	// permissions of existing file are kept
	assert.NoError(t, WriteFileAtomic(path, writeString("new=1\n")))
	st, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), st.Mode().Perm())

	err = WriteFileAtomic(filepath.Join(dir, "a.bz2"), writeString("x"))
	assert.Error(t, err)
}

func TestOpenSourceURL(t *testing.T) {
	gzPath := filepath.Join(t.TempDir(), "remote.properties.gz")
	assert.NoError(t, WriteFileAtomic(gzPath, writeString(testData)))
	gzData, err := os.ReadFile(gzPath)
	assert.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".gz") {
			w.Write(gzData)
			return
		}
		if r.URL.Path == "/missing.properties" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, testData)
	}))
	defer srv.Close()

	ctx := context.Background()
	for _, path := range []string{"/app.properties", "/app.properties.gz"} {
		r, err := OpenSource(ctx, srv.URL+path)
		assert.NoError(t, err)
		d, err := io.ReadAll(r)
		assert.NoError(t, err)
		assert.NoError(t, r.Close())
		assert.Equal(t, testData, string(d), "path: %s", path)
	}

	_, err = OpenSource(ctx, srv.URL+"/missing.properties")
	assert.Error(t, err)

	assert.True(t, IsURL(srv.URL))
	assert.False(t, IsURL("app.properties"))
}

func TestOpenSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.properties.br")
	assert.NoError(t, WriteFileAtomic(path, writeString(testData)))
	r, err := OpenSource(context.Background(), path)
	assert.NoError(t, err)
	defer r.Close()
	d, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, testData, string(d))

	_, err = OpenSource(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
