// Package epub resolves the reading structure of EPUB archives:
// container descriptor, package document, spine and navigation tree,
// plus streaming paragraph extraction from content documents.
package epub

import (
	"archive/zip"
	"io"
	"path"
)

// Reader provides random access to the entries of one EPUB archive.
type Reader struct {
	name   string
	zr     *zip.ReadCloser
	byName map[string]*zip.File
}

// Open opens an EPUB archive from a path.
func Open(filePath string) (*Reader, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, &ArchiveError{Archive: filePath, Err: ErrInvalidArchive}
	}

	r := &Reader{
		name:   filePath,
		zr:     zr,
		byName: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		r.byName[f.Name] = f
	}
	return r, nil
}

// Name returns the path the archive was opened from.
func (r *Reader) Name() string { return r.name }

// Close releases the underlying archive handle.
func (r *Reader) Close() error { return r.zr.Close() }

// OpenEntry returns a stream over the named archive entry.
func (r *Reader) OpenEntry(name string) (io.ReadCloser, error) {
	f, ok := r.byName[name]
	if !ok {
		return nil, &ArchiveError{Archive: r.name, Path: name, Err: ErrMissingContent}
	}
	return f.Open()
}

// BaseDir returns the directory prefix used to resolve hrefs declared
// inside the given archive entry: empty for root-level entries,
// "dir/" otherwise. Joining is plain concatenation so that resolved
// paths compare equal to spine paths byte for byte.
func BaseDir(entry string) string {
	dir := path.Dir(entry)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir + "/"
}
