package epub

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// NavPoint is one entry in the navigation tree. Href is the resolved
// archive-internal path of the entry's target, empty if absent.
type NavPoint struct {
	Label    string
	Href     string
	Children []NavPoint
}

// NavTree is the parsed table of contents of one archive. It is built
// once per archive and read-only afterwards.
type NavTree struct {
	Points []NavPoint
}

var errNoNavMap = errors.New("epub: no navMap element")

// ParseNavigation parses the navigation document at navPath into a
// tree. NCX documents are parsed by recursive descent over the token
// stream; documents without a navMap are retried as EPUB 3 XHTML nav
// documents. A stream that ends before a required close tag fails the
// whole tree, no partial result.
func (r *Reader) ParseNavigation(navPath string) (*NavTree, error) {
	rc, err := r.OpenEntry(navPath)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return nil, &ArchiveError{Archive: r.name, Path: navPath, Err: ErrMalformedNav}
	}

	base := BaseDir(navPath)

	tree, err := parseNCX(data, base)
	if err == nil {
		return tree, nil
	}
	if !errors.Is(err, errNoNavMap) {
		return nil, &ArchiveError{Archive: r.name, Path: navPath, Err: err}
	}

	tree, err = parseNavDoc(data, base)
	if err != nil {
		return nil, &ArchiveError{Archive: r.name, Path: navPath, Err: ErrMalformedNav}
	}
	return tree, nil
}

// Describe returns the breadcrumb of labels leading to the node whose
// target equals path, ancestors first, joined with " / ". The walk is
// pre-order and the first match wins. Returns false when no node in
// the tree targets path.
func (t *NavTree) Describe(path string) (string, bool) {
	return describe(t.Points, path)
}

func describe(points []NavPoint, path string) (string, bool) {
	for i := range points {
		p := &points[i]
		if p.Href != "" && p.Href == path {
			return p.Label, true
		}
		if sub, ok := describe(p.Children, path); ok {
			if p.Label == "" {
				return sub, true
			}
			return p.Label + " / " + sub, true
		}
	}
	return "", false
}

// parseNCX parses an NCX navigation document.
func parseNCX(data []byte, base string) (*NavTree, error) {
	dec := newDecoder(bytes.NewReader(data))
	if _, ok := skipTo(dec, "navMap"); !ok {
		return nil, errNoNavMap
	}

	tree := &NavTree{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, ErrMalformedNav
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "navPoint" {
				p, err := parseNavPoint(dec, base)
				if err != nil {
					return nil, err
				}
				tree.Points = append(tree.Points, p)
			}
		case xml.EndElement:
			if t.Name.Local == "navMap" {
				return tree, nil
			}
		}
	}
}

// parseNavPoint consumes tokens up to the end of the current navPoint,
// recursing into nested points. Labels may be split across several
// character-data runs; they are concatenated in document order.
func parseNavPoint(dec *xml.Decoder, base string) (NavPoint, error) {
	var p NavPoint
	var label strings.Builder
	inLabel := 0

	for {
		tok, err := dec.Token()
		if err != nil {
			return NavPoint{}, ErrMalformedNav
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "navPoint":
				child, err := parseNavPoint(dec, base)
				if err != nil {
					return NavPoint{}, err
				}
				p.Children = append(p.Children, child)
			case "navLabel":
				inLabel++
			case "content":
				if src, ok := attrValue(t.Attr, "src"); ok {
					p.Href = base + stripFragment(src)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "navLabel":
				if inLabel > 0 {
					inLabel--
				}
			case "navPoint":
				p.Label = strings.TrimSpace(label.String())
				return p, nil
			}
		case xml.CharData:
			if inLabel > 0 {
				label.Write(t)
			}
		}
	}
}

// parseNavDoc parses an EPUB 3 XHTML nav document: the <nav> element
// whose epub:type contains "toc", read as nested ol/li lists.
func parseNavDoc(data []byte, base string) (*NavTree, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	nav := findTocNav(doc)
	if nav == nil {
		return nil, ErrMalformedNav
	}

	tree := &NavTree{}
	if ol := findList(nav); ol != nil {
		tree.Points = parseListEntries(ol, base)
	}
	return tree, nil
}

func findTocNav(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "nav" {
		for _, attr := range n.Attr {
			if (attr.Key == "epub:type" || attr.Key == "type") && strings.Contains(attr.Val, "toc") {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTocNav(c); found != nil {
			return found
		}
	}
	return nil
}

func findList(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "ol" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findList(c); found != nil {
			return found
		}
	}
	return nil
}

func parseListEntries(ol *html.Node, base string) []NavPoint {
	var points []NavPoint
	for c := ol.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		p := parseListEntry(c, base)
		if p.Label != "" || p.Href != "" || len(p.Children) > 0 {
			points = append(points, p)
		}
	}
	return points
}

func parseListEntry(li *html.Node, base string) NavPoint {
	var p NavPoint
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "a":
			p.Label = nodeText(c)
			for _, attr := range c.Attr {
				if attr.Key == "href" {
					href := attr.Val
					if dec, err := url.PathUnescape(href); err == nil {
						href = dec
					}
					p.Href = base + stripFragment(href)
				}
			}
		case "span":
			if p.Label == "" {
				p.Label = nodeText(c)
			}
		case "ol":
			p.Children = parseListEntries(c, base)
		}
	}
	return p
}

// nodeText collects all text content beneath an HTML node.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(nodeText(c))
	}
	return strings.TrimSpace(text.String())
}

// stripFragment drops a #fragment suffix so nav targets compare equal
// to spine paths.
func stripFragment(href string) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		return href[:i]
	}
	return href
}
