package epubgrep

import (
	"fmt"
	"io"
)

// ColorMode controls when highlighting escapes are emitted.
type ColorMode int

const (
	// ColorAuto highlights only when the output stream is a terminal.
	ColorAuto ColorMode = iota
	// ColorAlways highlights unconditionally.
	ColorAlways
	// ColorNever emits plain text only.
	ColorNever
)

// ParseColorMode parses a --color flag value. Anything other than
// always, auto or never is a configuration error, reported before any
// archive is opened.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want always, auto or never)", s)
}

// Options configures a search run.
type Options struct {
	IgnoreCase bool // match case-insensitively
	WordRegexp bool // require word boundaries around matches
	Count      bool // per-archive match counts instead of matched text
	Quiet      bool // no normal output, stop the run at the first match
	Color      ColorMode

	// Stdout and Stderr override the process streams when non-nil,
	// mainly for tests.
	Stdout io.Writer
	Stderr io.Writer
}
