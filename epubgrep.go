// Package epubgrep searches EPUB archives for regular-expression
// matches, reporting each matching paragraph together with the
// chapter it falls in.
//
// Basic usage:
//
//	found, err := epubgrep.Search("whale", []string{"moby-dick.epub"}, epubgrep.Options{})
//	if err != nil {
//	    // invalid pattern
//	}
//
// Archives are processed independently and sequentially; a malformed
// archive is reported and skipped without affecting the others.
package epubgrep

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/tsawler/epubgrep/epub"
)

// errStopRun unwinds the document and archive loops once quiet mode
// has seen its first match, so handles still close and buffered
// output still flushes on the way out.
var errStopRun = errors.New("stop run")

// Search runs pattern over the given archives in order and reports
// whether any paragraph matched. Archive-level failures (unreadable
// file, malformed structure) are reported to the error stream and the
// archive is skipped; only an invalid pattern fails the whole run,
// before any archive is opened.
func Search(pattern string, archives []string, opts Options) (bool, error) {
	re, err := compilePattern(pattern, opts)
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	p := newPrinter(opts)
	defer p.flush()

	s := &searcher{re: re, opts: opts, printer: p}
	for _, name := range archives {
		if err := s.searchArchive(name); err != nil {
			if errors.Is(err, errStopRun) {
				return true, nil
			}
			p.errorf("%v", err)
		}
	}
	return s.found, nil
}

type searcher struct {
	re      *regexp.Regexp
	opts    Options
	printer *printer
	found   bool
}

// searchArchive resolves one archive's structure and scans its spine
// documents in declared order. Document order matters: the chapter
// label carries forward across documents the navigation tree does not
// mention, so a document between two indexed entries is attributed to
// the most recently named chapter.
func (s *searcher) searchArchive(name string) error {
	r, err := epub.Open(name)
	if err != nil {
		return err
	}
	defer r.Close()

	pkg, err := r.ResolvePackage()
	if err != nil {
		return err
	}
	nav, err := r.ParseNavigation(pkg.NavPath)
	if err != nil {
		return err
	}

	chapter := ""
	count := 0
	for _, doc := range pkg.Spine {
		if label, ok := nav.Describe(doc); ok {
			chapter = label
		}

		n, err := s.searchDocument(r, doc, chapter)
		if err != nil {
			if errors.Is(err, errStopRun) {
				return err
			}
			// A single unreadable document skips that document only.
			s.printer.warnf("%v", err)
			continue
		}
		count += n
	}

	if s.opts.Count {
		s.printer.countLine(r.Name(), count)
	}
	return nil
}

// searchDocument streams one spine document's paragraphs and reports
// matches according to the output mode. The count is of matched
// spans, not matched paragraphs.
func (s *searcher) searchDocument(r *epub.Reader, doc, chapter string) (int, error) {
	rc, err := r.OpenEntry(doc)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	count := 0
	paras := epub.NewParagraphs(rc)
	for {
		text, ok := paras.Next()
		if !ok {
			break
		}
		spans := s.re.FindAllStringIndex(text, -1)
		if len(spans) == 0 {
			continue
		}

		s.found = true
		if s.opts.Quiet {
			return count, errStopRun
		}
		count += len(spans)
		if !s.opts.Count {
			s.printer.matchLine(r.Name(), chapter, text, spans)
		}
	}
	return count, nil
}
