package epubgrep

import "regexp"

// compilePattern builds the effective matcher from the user pattern.
// Case folding uses the inline (?i) directive rather than lowering
// input text, so reported spans index the original paragraph. Word
// matching wraps the pattern in \b anchors, grouped so alternations
// stay inside the boundaries.
func compilePattern(pattern string, opts Options) (*regexp.Regexp, error) {
	p := pattern
	if opts.WordRegexp {
		p = `\b(?:` + p + `)\b`
	}
	if opts.IgnoreCase {
		p = `(?i)` + p
	}
	return regexp.Compile(p)
}
