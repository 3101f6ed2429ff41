// SPDX-License-Identifier: MPL-2.0

package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Extension is the recognized icon file extension. Matching is case-insensitive.
const Extension = ".svg"

var (
	// ErrDirectoryNotFound reports that the icons directory is missing or is not a directory.
	ErrDirectoryNotFound = errors.New("icons directory not found")
	// ErrNoIconsFound reports that the directory holds no icon files.
	ErrNoIconsFound = errors.New("no SVG files found")
)

type (
	// Icon is a candidate icon file found by Dir. It lives for one assembly pass.
	Icon struct {
		// Path is the absolute path of the file.
		Path string
		// FileName is the file name as listed in the directory.
		FileName string
		// Name is FileName without the icon extension.
		Name string
	}

	// Option configures a scan.
	Option func(*options)

	options struct {
		ignore []string
	}
)

// WithIgnore excludes files whose name matches any of the doublestar patterns.
func WithIgnore(patterns ...string) Option {
	return func(o *options) {
		o.ignore = append(o.ignore, patterns...)
	}
}

// Dir lists the icon files in dir. A missing directory yields
// ErrDirectoryNotFound and an empty directory yields ErrNoIconsFound; both
// come with a nil slice and are meant to be reported, not propagated. Any
// other error is an I/O failure reading the directory.
func Dir(dir string, opts ...Option) ([]Icon, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("scan: resolve directory %q: %w", dir, err)
	}

	info, err := os.Stat(absDir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("scan: stat %q: %w", dir, err)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("scan: read directory %q: %w", dir, err)
	}

	var icons []Icon
	for _, entry := range entries {
		if entry.IsDir() || !IsIcon(entry.Name()) || Ignored(entry.Name(), o.ignore) {
			continue
		}
		icons = append(icons, Icon{
			Path:     filepath.Join(absDir, entry.Name()),
			FileName: entry.Name(),
			Name:     BaseName(entry.Name()),
		})
	}

	if len(icons) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoIconsFound, dir)
	}
	return icons, nil
}

// IsIcon reports whether name carries the icon extension.
func IsIcon(name string) bool {
	return len(name) > len(Extension) && strings.EqualFold(name[len(name)-len(Extension):], Extension)
}

// BaseName strips the icon extension from name.
func BaseName(name string) string {
	if !IsIcon(name) {
		return name
	}
	return name[:len(name)-len(Extension)]
}

// Ignored reports whether name matches any of the doublestar patterns.
// Invalid patterns never match; use ValidatePatterns to reject them up front.
func Ignored(name string, patterns []string) bool {
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, name); err == nil && matched {
			return true
		}
	}
	return false
}

// ValidatePatterns checks that every pattern is a valid doublestar glob.
func ValidatePatterns(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("invalid ignore pattern %q", pat)
		}
	}
	return nil
}
