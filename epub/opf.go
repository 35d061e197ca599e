package epub

import "encoding/xml"

// Media types retained from the manifest: ordinary XHTML content and
// the legacy NCX navigation control document. Everything else
// (images, stylesheets, fonts) is discarded up front.
const (
	mediaTypeXHTML = "application/xhtml+xml"
	mediaTypeNCX   = "application/x-dtbncx+xml"
)

// Package holds the resolved reading structure of one archive: the
// navigation document path and the spine in declaration order. Paths
// are archive-internal, already joined with the package document's
// base directory.
type Package struct {
	NavPath string
	Spine   []string
}

// ResolvePackage locates the package document via the container
// descriptor and parses its manifest and spine.
//
// The walk is forward-only over the token stream: skip to the
// manifest, collect textual items by id, then find the spine, resolve
// its toc reference and append each itemref's href in declared order.
// Spine order is preserved exactly; itemrefs naming ids absent from
// the filtered manifest are tolerated and skipped. Missing files only
// surface later, when a document is opened.
func (r *Reader) ResolvePackage() (*Package, error) {
	rootfile, err := r.RootfilePath()
	if err != nil {
		return nil, err
	}

	rc, err := r.OpenEntry(rootfile)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	base := BaseDir(rootfile)
	dec := newDecoder(rc)

	// Package documents open with metadata blocks of unpredictable
	// shape; everything before the manifest is irrelevant here.
	if _, ok := skipTo(dec, "manifest"); !ok {
		return nil, r.malformedPackage(rootfile)
	}

	manifest := make(map[string]string)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, r.malformedPackage(rootfile)
		}
		if ee, ok := tok.(xml.EndElement); ok && ee.Name.Local == "manifest" {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "item" {
			continue
		}

		mediaType, _ := attrValue(se.Attr, "media-type")
		id, okID := attrValue(se.Attr, "id")
		href, okHref := attrValue(se.Attr, "href")
		if !okID || !okHref {
			continue
		}
		if mediaType == mediaTypeXHTML || mediaType == mediaTypeNCX {
			manifest[id] = href
		}
	}

	spine, ok := skipTo(dec, "spine")
	if !ok {
		return nil, r.malformedPackage(rootfile)
	}
	tocID, ok := attrValue(spine.Attr, "toc")
	if !ok {
		return nil, r.malformedPackage(rootfile)
	}
	tocHref, ok := manifest[tocID]
	if !ok {
		return nil, r.malformedPackage(rootfile)
	}

	pkg := &Package{NavPath: base + tocHref}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, r.malformedPackage(rootfile)
		}
		if ee, ok := tok.(xml.EndElement); ok && ee.Name.Local == "spine" {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "itemref" {
			continue
		}
		idref, ok := attrValue(se.Attr, "idref")
		if !ok {
			continue
		}
		if href, ok := manifest[idref]; ok {
			pkg.Spine = append(pkg.Spine, base+href)
		}
	}

	return pkg, nil
}

func (r *Reader) malformedPackage(path string) error {
	return &ArchiveError{Archive: r.name, Path: path, Err: ErrMalformedPackage}
}
