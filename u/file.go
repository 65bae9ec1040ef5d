package u

import (
	"io"
	"os"
	"path/filepath"
)

// FileExists returns true if path exists and is a regular file
func FileExists(path string) bool {
	st, err := os.Lstat(path)
	return err == nil && st.Mode().IsRegular()
}

// CloseNoError is like io.Closer Close() but ignores an error
// use as: defer CloseNoError(f)
func CloseNoError(f io.Closer) {
	_ = f.Close()
}

// WriteFileAtomic creates or replaces path with data written by fn.
// Data is written to a temporary file in the same directory which
// is renamed to path only if everything succeeded, so path is
// never left partially written.
// If path is a compressed file (see CompressionExt), data is compressed.
func WriteFileAtomic(path string, fn func(w io.Writer) error) error {
	dir, name := filepath.Split(path)
	if name == "" {
		return &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	if dir == "" {
		dir = "."
	}
	var perm os.FileMode = 0644
	if st, err := os.Stat(path); err == nil {
		perm = st.Mode().Perm()
	}

	tmpFile, err := os.CreateTemp(dir, name+".tmp*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	didRename := false
	defer func() {
		if !didRename {
			// ignoring error on this one
			_ = os.Remove(tmpPath)
		}
	}()

	w, err := NewCompressingWriter(tmpFile, path)
	if err != nil {
		tmpFile.Close()
		return err
	}
	err = fn(w)
	errCompress := w.Close()
	errChmod := tmpFile.Chmod(perm)
	// https://www.joeshaw.org/dont-defer-close-on-writable-files/
	errSync := tmpFile.Sync()
	errClose := tmpFile.Close()
	if err = getErr(err, errCompress, errChmod, errSync, errClose); err != nil {
		return err
	}

	// this will over-write path (if it exists)
	if err = os.Rename(tmpPath, path); err != nil {
		return err
	}
	didRename = true
	// for extra protection against crashes elsewhere,
	// sync directory after rename
	fdir, _ := os.Open(dir)
	if fdir != nil {
		// ignore errors as those are a nice have, not must have
		_ = fdir.Sync()
		_ = fdir.Close()
	}
	return nil
}
