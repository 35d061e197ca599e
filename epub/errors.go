package epub

import (
	"errors"
	"fmt"
)

// Structural errors. Each aborts processing of the current archive
// only; callers skip to the next archive.
var (
	ErrInvalidArchive   = errors.New("epub: invalid or corrupted archive")
	ErrNoContainer      = errors.New("epub: missing META-INF/container.xml")
	ErrInvalidContainer = errors.New("epub: invalid container.xml")
	ErrNoRootfile       = errors.New("epub: no rootfile found in container.xml")
	ErrMalformedPackage = errors.New("epub: malformed package document")
	ErrMalformedNav     = errors.New("epub: malformed navigation document")
	ErrMissingContent   = errors.New("epub: referenced content file not found")
)

// ArchiveError ties a structural failure to the archive (and the
// offending entry, if known) so callers can render a user-facing
// message without carrying extra state.
type ArchiveError struct {
	Archive string
	Path    string
	Err     error
}

func (e *ArchiveError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Archive, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Archive, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }
