package epubgrep

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// printer renders match output on stdout and error output on stderr.
// The two streams are styled independently and match output is
// buffered, so every exit path must flush.
type printer struct {
	out    *bufio.Writer
	errOut io.Writer

	highlight *color.Color
	errMark   *color.Color
	warnMark  *color.Color
}

func newPrinter(opts Options) *printer {
	switch opts.Color {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.Stderr
	if errOut == nil {
		errOut = os.Stderr
	}

	return &printer{
		out:       bufio.NewWriter(out),
		errOut:    errOut,
		highlight: color.New(color.FgRed, color.Bold),
		errMark:   color.New(color.FgRed, color.Bold),
		warnMark:  color.New(color.FgYellow),
	}
}

func (p *printer) flush() {
	p.out.Flush()
}

// matchLine writes one verbose-mode match: an archive/chapter header,
// then the paragraph with each matched span highlighted. Spans are
// non-overlapping and ordered left to right; each consumes the text
// since the previous span as plain, then the span itself highlighted,
// with the remainder after the last span plain.
func (p *printer) matchLine(archive, chapter, text string, spans [][]int) {
	if chapter != "" {
		fmt.Fprintf(p.out, "%s (%s): ", archive, chapter)
	} else {
		fmt.Fprintf(p.out, "%s: ", archive)
	}

	last := 0
	for _, sp := range spans {
		p.out.WriteString(text[last:sp[0]])
		p.highlight.Fprint(p.out, text[sp[0]:sp[1]])
		last = sp[1]
	}
	p.out.WriteString(text[last:])
	p.out.WriteByte('\n')
}

// countLine writes one count-mode summary for an archive.
func (p *printer) countLine(archive string, n int) {
	fmt.Fprintf(p.out, "%s: %d\n", archive, n)
}

func (p *printer) errorf(format string, args ...any) {
	p.errMark.Fprint(p.errOut, "Error: ")
	fmt.Fprintf(p.errOut, format+"\n", args...)
}

func (p *printer) warnf(format string, args ...any) {
	p.warnMark.Fprint(p.errOut, "Warning: ")
	fmt.Fprintf(p.errOut, format+"\n", args...)
}
