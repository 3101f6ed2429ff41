// SPDX-License-Identifier: MPL-2.0

package sprite

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/iconsprite/internal/normalize"
	"github.com/invowk/iconsprite/internal/scan"
	"github.com/invowk/iconsprite/internal/symbol"
)

// DefaultPrefix is the identifier prefix used when none is configured.
const DefaultPrefix = "icon"

type (
	// Normalizer optimizes the raw markup of one icon.
	Normalizer interface {
		Normalize(ctx context.Context, markup string) (string, error)
	}

	// Builder produces the sprite for one icons directory.
	// A Builder holds no state between builds and is safe for concurrent use;
	// concurrent builds each redo the full work.
	Builder struct {
		dir        string
		prefix     string
		ignore     []string
		normalizer Normalizer
		logger     *log.Logger
	}

	// Result is the outcome of one build.
	Result struct {
		// Document is the assembled sprite.
		Document Document
		// Scanned is the number of icon files found.
		Scanned int
		// Warnings lists every non-fatal condition, in the order met.
		Warnings []Warning
	}

	// Option configures a Builder.
	Option func(*Builder)
)

// WithPrefix sets the symbol identifier prefix.
func WithPrefix(prefix string) Option {
	return func(b *Builder) {
		if prefix != "" {
			b.prefix = prefix
		}
	}
}

// WithIgnore excludes icon files matching the doublestar patterns.
func WithIgnore(patterns ...string) Option {
	return func(b *Builder) {
		b.ignore = append(b.ignore, patterns...)
	}
}

// WithNormalizer replaces the default normalizer (base passes only).
func WithNormalizer(n Normalizer) Option {
	return func(b *Builder) {
		b.normalizer = n
	}
}

// WithLogger sets the logger used for warnings and progress.
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) {
		b.logger = l
	}
}

// NewBuilder creates a Builder for dir.
func NewBuilder(dir string, opts ...Option) *Builder {
	b := &Builder{
		dir:    dir,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.normalizer == nil {
		// An empty config is always valid.
		n, _ := normalize.New(normalize.Config{})
		b.normalizer = n
	}
	if b.logger == nil {
		b.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "sprite"})
	}
	return b
}

// Dir returns the icons directory.
func (b *Builder) Dir() string {
	return b.dir
}

// Build runs scan, normalize, extract and assemble. The only error it
// returns is the context's, checked between icons; everything else is a
// warning in the Result.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	var res Result

	icons, err := scan.Dir(b.dir, scan.WithIgnore(b.ignore...))
	if err != nil {
		w := Warning{Kind: ErrScanFailed, Err: err}
		switch {
		case errors.Is(err, scan.ErrDirectoryNotFound):
			w = Warning{Kind: ErrDirectoryNotFound}
			b.logger.Warn("SVG icons directory not found", "dir", b.dir)
		case errors.Is(err, scan.ErrNoIconsFound):
			w = Warning{Kind: ErrNoIconsFound}
			b.logger.Warn("No SVG files found", "dir", b.dir)
		default:
			b.logger.Warn("Cannot read SVG icons directory", "dir", b.dir, "err", err)
		}
		res.Warnings = append(res.Warnings, w)
		return res, nil
	}

	res.Scanned = len(icons)
	b.logger.Info(fmt.Sprintf("Found %d SVG files", len(icons)), "dir", b.dir)

	symbols := make([]symbol.Symbol, 0, len(icons))
	for _, icon := range icons {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		sym, warn := b.buildOne(ctx, icon)
		if warn != nil {
			b.logger.Warn("Skipping icon", "file", warn.File, "reason", warn.Kind, "err", warn.Err)
			res.Warnings = append(res.Warnings, *warn)
			continue
		}
		symbols = append(symbols, sym)
	}

	res.Document = NewDocument(symbols)
	if dups := len(symbols) - res.Document.Len(); dups > 0 {
		b.logger.Debug("Duplicate symbol ids collapsed", "count", dups)
	}
	return res, nil
}

func (b *Builder) buildOne(ctx context.Context, icon scan.Icon) (symbol.Symbol, *Warning) {
	data, err := os.ReadFile(icon.Path)
	if err != nil {
		return symbol.Symbol{}, &Warning{Kind: ErrUnreadable, File: icon.FileName, Err: err}
	}

	optimized, err := b.normalizer.Normalize(ctx, string(data))
	if err != nil {
		return symbol.Symbol{}, &Warning{Kind: ErrNormalizeFailed, File: icon.FileName, Err: err}
	}

	sym, ok := symbol.Extract(symbol.ID(b.prefix, icon.Name), optimized)
	if !ok {
		return symbol.Symbol{}, &Warning{Kind: ErrSymbolExtractionMiss, File: icon.FileName}
	}
	return sym, nil
}

// Sprite builds and serializes the sprite, returning "" when there is nothing
// to inject or the context ends first.
func (b *Builder) Sprite(ctx context.Context) string {
	res, err := b.Build(ctx)
	if err != nil {
		return ""
	}
	return res.Document.String()
}
