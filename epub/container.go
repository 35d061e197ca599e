package epub

import (
	"encoding/xml"
	"io"
)

// containerPath is the fixed location of the container descriptor.
const containerPath = "META-INF/container.xml"

// RootfilePath reads the container descriptor and returns the
// declared path of the package document. The first rootfile element
// wins; its full-path attribute is percent-decoded.
func (r *Reader) RootfilePath() (string, error) {
	rc, err := r.OpenEntry(containerPath)
	if err != nil {
		return "", &ArchiveError{Archive: r.name, Path: containerPath, Err: ErrNoContainer}
	}
	defer rc.Close()

	dec := newDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", &ArchiveError{Archive: r.name, Path: containerPath, Err: ErrNoRootfile}
		}
		if err != nil {
			return "", &ArchiveError{Archive: r.name, Path: containerPath, Err: ErrInvalidContainer}
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "rootfile" {
			continue
		}
		full, ok := attrValue(se.Attr, "full-path")
		if !ok || full == "" {
			return "", &ArchiveError{Archive: r.name, Path: containerPath, Err: ErrNoRootfile}
		}
		return full, nil
	}
}
