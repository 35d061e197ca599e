package epub

import (
	"errors"
	"testing"
)

const testNCX = `<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <head><meta name="dtb:uid" content="test"/></head>
  <docTitle><text>Test Book</text></docTitle>
  <navMap>
    <navPoint id="p1" playOrder="1">
      <navLabel><text>Part I</text></navLabel>
      <content src="part1.xhtml"/>
      <navPoint id="c1" playOrder="2">
        <navLabel><text>Chapter 1</text></navLabel>
        <content src="chapter1.xhtml"/>
      </navPoint>
      <navPoint id="c2" playOrder="3">
        <navLabel><text>Chapter 2</text></navLabel>
        <content src="chapter2.xhtml"/>
      </navPoint>
    </navPoint>
    <navPoint id="p2" playOrder="4">
      <navLabel><text>Part II</text></navLabel>
      <content src="part2.xhtml"/>
    </navPoint>
  </navMap>
</ncx>`

func parseTestNav(t *testing.T, body string) *NavTree {
	t.Helper()

	r := openArchive(t, []entry{{"OEBPS/toc.ncx", body}})
	tree, err := r.ParseNavigation("OEBPS/toc.ncx")
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestParseNavigationNCX(t *testing.T) {
	tree := parseTestNav(t, testNCX)

	if len(tree.Points) != 2 {
		t.Fatalf("got %d top-level points, want 2", len(tree.Points))
	}
	if tree.Points[0].Label != "Part I" {
		t.Errorf("Points[0].Label = %q, want %q", tree.Points[0].Label, "Part I")
	}
	if len(tree.Points[0].Children) != 2 {
		t.Fatalf("got %d children under Part I, want 2", len(tree.Points[0].Children))
	}
	if got := tree.Points[0].Children[1].Href; got != "OEBPS/chapter2.xhtml" {
		t.Errorf("child href = %q, want resolved against the NCX base dir", got)
	}
}

func TestDescribe(t *testing.T) {
	tree := parseTestNav(t, testNCX)

	tests := []struct {
		path  string
		want  string
		found bool
	}{
		{"OEBPS/part1.xhtml", "Part I", true},
		{"OEBPS/chapter1.xhtml", "Part I / Chapter 1", true},
		{"OEBPS/chapter2.xhtml", "Part I / Chapter 2", true},
		{"OEBPS/part2.xhtml", "Part II", true},
		{"OEBPS/unlisted.xhtml", "", false},
	}

	for _, tt := range tests {
		got, found := tree.Describe(tt.path)
		if got != tt.want || found != tt.found {
			t.Errorf("Describe(%q) = (%q, %v), want (%q, %v)",
				tt.path, got, found, tt.want, tt.found)
		}
	}
}

func TestParseNavigationLabelFragmentsConcatenated(t *testing.T) {
	tree := parseTestNav(t, `<ncx>
  <navMap>
    <navPoint id="c1">
      <navLabel><text>Chapter </text><text>One</text></navLabel>
      <content src="ch1.xhtml"/>
    </navPoint>
  </navMap>
</ncx>`)

	if got := tree.Points[0].Label; got != "Chapter One" {
		t.Errorf("Label = %q, want text runs concatenated in order", got)
	}
}

func TestParseNavigationStripsFragments(t *testing.T) {
	tree := parseTestNav(t, `<ncx>
  <navMap>
    <navPoint id="c1">
      <navLabel><text>Chapter 1</text></navLabel>
      <content src="ch1.xhtml#section2"/>
    </navPoint>
  </navMap>
</ncx>`)

	if _, found := tree.Describe("OEBPS/ch1.xhtml"); !found {
		t.Error("Describe should match a nav target that carried a fragment")
	}
}

func TestParseNavigationTruncated(t *testing.T) {
	r := openArchive(t, []entry{{"OEBPS/toc.ncx", `<ncx>
  <navMap>
    <navPoint id="c1">
      <navLabel><text>Chapter 1</text></navLabel>`}})

	_, err := r.ParseNavigation("OEBPS/toc.ncx")
	if !errors.Is(err, ErrMalformedNav) {
		t.Errorf("ParseNavigation() error = %v, want ErrMalformedNav", err)
	}
}

func TestParseNavigationEPUB3NavDoc(t *testing.T) {
	tree := parseTestNav(t, `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<body>
  <nav epub:type="toc">
    <h1>Contents</h1>
    <ol>
      <li><a href="ch1.xhtml">Chapter 1</a>
        <ol>
          <li><a href="ch1.xhtml#s1">Section 1.1</a></li>
          <li><a href="ch2.xhtml">Section 1.2</a></li>
        </ol>
      </li>
      <li><a href="ch3.xhtml">Chapter 2</a></li>
    </ol>
  </nav>
</body>
</html>`)

	if len(tree.Points) != 2 {
		t.Fatalf("got %d top-level points, want 2", len(tree.Points))
	}
	got, found := tree.Describe("OEBPS/ch2.xhtml")
	if !found || got != "Chapter 1 / Section 1.2" {
		t.Errorf("Describe = (%q, %v), want nested nav-doc breadcrumb", got, found)
	}
}

func TestParseNavigationMissingEntry(t *testing.T) {
	r := openArchive(t, []entry{{"mimetype", "application/epub+zip"}})

	_, err := r.ParseNavigation("OEBPS/toc.ncx")
	if !errors.Is(err, ErrMissingContent) {
		t.Errorf("ParseNavigation() error = %v, want ErrMissingContent", err)
	}
}
