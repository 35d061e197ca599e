package epub

import (
	"encoding/xml"
	"io"
	"net/url"

	"golang.org/x/net/html/charset"
)

// newDecoder builds a tokenizing decoder tuned for EPUB XML: books in
// the wild carry named HTML entities and the occasional non-UTF-8
// declaration, so strict mode is off and charsets are honoured.
func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

// attrValue returns the percent-decoded value of the named attribute,
// matching on the local name so namespace prefixes don't matter.
// Values that fail to decode are returned raw.
func attrValue(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local != name {
			continue
		}
		if dec, err := url.PathUnescape(a.Value); err == nil {
			return dec, true
		}
		return a.Value, true
	}
	return "", false
}

// skipTo advances the decoder past everything up to a start element
// with the given local name, returning it, or false when the stream
// ends first.
func skipTo(dec *xml.Decoder, name string) (xml.StartElement, bool) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, false
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == name {
			return se, true
		}
	}
}
