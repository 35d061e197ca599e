package epub

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Paragraphs streams the <p> blocks of a single content document in
// document order. The stream is single-pass and finite; construct a
// fresh one per document.
type Paragraphs struct {
	z *html.Tokenizer
}

// NewParagraphs wraps one opened spine document. The stream is sniffed
// for its character encoding before tokenizing, since content
// documents are not guaranteed to be UTF-8.
func NewParagraphs(r io.Reader) *Paragraphs {
	cr, err := charset.NewReader(r, "application/xhtml+xml")
	if err != nil {
		cr = r
	}
	return &Paragraphs{z: html.NewTokenizer(cr)}
}

// Next returns the next paragraph's text, with all character-data runs
// inside the element concatenated in encounter order. ok is false once
// the document is exhausted; a truncated or corrupted document ends
// the stream the same way rather than failing.
func (p *Paragraphs) Next() (text string, ok bool) {
	for {
		switch p.z.Next() {
		case html.ErrorToken:
			return "", false
		case html.SelfClosingTagToken:
			if name, _ := p.z.TagName(); string(name) == "p" {
				return "", true
			}
		case html.StartTagToken:
			if name, _ := p.z.TagName(); string(name) == "p" {
				return p.collect()
			}
		}
	}
}

// collect accumulates text until the close tag matching the paragraph
// just opened. Nested paragraphs are tracked by depth so their text is
// kept with the outermost block instead of being lost.
func (p *Paragraphs) collect() (string, bool) {
	var text strings.Builder
	depth := 1
	for {
		switch p.z.Next() {
		case html.ErrorToken:
			return "", false
		case html.TextToken:
			text.Write(p.z.Text())
		case html.StartTagToken:
			if name, _ := p.z.TagName(); string(name) == "p" {
				depth++
			}
		case html.EndTagToken:
			if name, _ := p.z.TagName(); string(name) == "p" {
				depth--
				if depth == 0 {
					return text.String(), true
				}
			}
		}
	}
}
