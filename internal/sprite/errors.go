// SPDX-License-Identifier: MPL-2.0

package sprite

import (
	"errors"
	"fmt"

	"github.com/invowk/iconsprite/internal/issue"
	"github.com/invowk/iconsprite/internal/scan"
)

var (
	// ErrDirectoryNotFound reports a missing icons directory.
	ErrDirectoryNotFound = scan.ErrDirectoryNotFound
	// ErrNoIconsFound reports an icons directory without icon files.
	ErrNoIconsFound = scan.ErrNoIconsFound
	// ErrSymbolExtractionMiss reports an icon without a complete <svg> element.
	ErrSymbolExtractionMiss = errors.New("no <svg> element found")
	// ErrNormalizeFailed reports an icon rejected by the normalization engine.
	ErrNormalizeFailed = errors.New("normalization failed")
	// ErrUnreadable reports an icon file that could not be read.
	ErrUnreadable = errors.New("icon file unreadable")
	// ErrScanFailed reports an I/O failure while listing the directory.
	ErrScanFailed = errors.New("icons directory unreadable")
)

// Warning is a non-fatal condition met while building a sprite.
type Warning struct {
	// Kind is one of the sentinel errors of this package.
	Kind error
	// File is the icon file name; empty for directory-level warnings.
	File string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (w Warning) Error() string {
	switch {
	case w.File != "" && w.Err != nil:
		return fmt.Sprintf("%s: %v: %v", w.File, w.Kind, w.Err)
	case w.File != "":
		return fmt.Sprintf("%s: %v", w.File, w.Kind)
	case w.Err != nil:
		return w.Err.Error()
	default:
		return w.Kind.Error()
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (w Warning) Unwrap() []error {
	return []error{w.Kind, w.Err}
}

// IssueID maps the warning to its explanation in the issue catalog.
func (w Warning) IssueID() issue.Id {
	switch {
	case errors.Is(w.Kind, ErrDirectoryNotFound):
		return issue.DirectoryNotFoundId
	case errors.Is(w.Kind, ErrNoIconsFound):
		return issue.NoIconsFoundId
	case errors.Is(w.Kind, ErrSymbolExtractionMiss):
		return issue.SymbolExtractionMissId
	default:
		return issue.NormalizeFailedId
	}
}
