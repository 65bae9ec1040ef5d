package u

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// implement io.ReadCloser over a reader wrapping another reader.
// Close() closes the wrapping reader (if it's io.Closer) and then closer
type readCloser struct {
	r      io.Reader
	closer io.Closer
}

func (rc *readCloser) Read(p []byte) (int, error) {
	return rc.r.Read(p)
}

func (rc *readCloser) Close() error {
	var err error
	if c, ok := rc.r.(io.Closer); ok && c != rc.closer {
		err = c.Close()
	}
	if rc.closer != nil {
		err = getErr(err, rc.closer.Close())
	}
	return err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// CompressionExt returns normalized extension of a compressed file
// (".gz", ".bz2", ".zst", ".br") or "" if path is not a compressed file
func CompressionExt(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gz", ".bz2", ".br":
		return ext
	case ".zst", ".zstd":
		return ".zst"
	}
	return ""
}

// TrimCompressionExt returns path without compression extension
// e.g. "app.properties.gz" => "app.properties"
func TrimCompressionExt(path string) string {
	if CompressionExt(path) == "" {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// NewDecompressingReader wraps r in a decompressor picked by extension
// of path. Returns r if path is not a compressed file
func NewDecompressingReader(r io.Reader, path string) (io.Reader, error) {
	switch CompressionExt(path) {
	case ".gz":
		return gzip.NewReader(r)
	case ".bz2":
		return bzip2.NewReader(r), nil
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case ".br":
		return brotli.NewReader(r), nil
	}
	return r, nil
}

func zstdNewWriter(dst io.Writer) (*zstd.Encoder, error) {
	// in my tests:
	// - zstd.SpeedBestCompression is much slower and not much better
	// - default concurrency is GONUMPROCS() but adding concurrency of any value
	//   doesn't consistently speed things up
	return zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
}

// NewCompressingWriter wraps w in a compressor picked by extension of path.
// Close() flushes compressed data but doesn't close w
func NewCompressingWriter(w io.Writer, path string) (io.WriteCloser, error) {
	switch CompressionExt(path) {
	case ".gz":
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case ".bz2":
		return nil, fmt.Errorf("writing bzip2 files is not supported ('%s')", path)
	case ".zst":
		return zstdNewWriter(w)
	case ".br":
		return brotli.NewWriterLevel(w, brotli.DefaultCompression), nil
	}
	return nopWriteCloser{w}, nil
}

// OpenFileMaybeCompressed opens a file that might be compressed with gzip
// or bzip2 or zstd or brotli
// TODO: could sniff file content instead of checking file extension
func OpenFileMaybeCompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewDecompressingReader(f, path)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &readCloser{r: r, closer: f}, nil
}

// ReadFileMaybeCompressed reads a file, decompressing if needed
func ReadFileMaybeCompressed(path string) ([]byte, error) {
	r, err := OpenFileMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
