package u

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/carlmjohnson/requests"
)

// IsURL returns true for http:// and https:// urls
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// OpenSource opens src for reading. src can be:
//   - "-" for stdin
//   - http:// or https:// url, which is downloaded
//   - path of a file
//
// Compressed files and urls are decompressed based on extension.
// Caller must Close() returned reader.
func OpenSource(ctx context.Context, src string) (io.ReadCloser, error) {
	if src == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	if !IsURL(src) {
		return OpenFileMaybeCompressed(src)
	}

	var buf bytes.Buffer
	err := requests.
		URL(src).
		ToBytesBuffer(&buf).
		Fetch(ctx)
	if err != nil {
		return nil, err
	}
	path := src
	if u, err := url.Parse(src); err == nil {
		path = u.Path
	}
	r, err := NewDecompressingReader(&buf, path)
	if err != nil {
		return nil, err
	}
	return &readCloser{r: r}, nil
}
