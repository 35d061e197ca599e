package epub

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// entry is one archive member used to build test EPUBs.
type entry struct {
	name string
	body string
}

// writeArchive builds a zip archive with the given entries and
// returns its path.
func writeArchive(t *testing.T, entries []entry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.epub")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		ew, err := w.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := ew.Write([]byte(e.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// openArchive builds and opens a test EPUB, closing it on cleanup.
func openArchive(t *testing.T, entries []entry) *Reader {
	t.Helper()

	r, err := Open(writeArchive(t, entries))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

const testContainer = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`
