// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

type (
	// Option configures a Session at Start.
	Option func(*options)

	options struct {
		ignore   []string
		debounce time.Duration
		logger   *log.Logger
	}
)

// WithIgnore drops events for file names matching the doublestar patterns.
func WithIgnore(patterns ...string) Option {
	return func(o *options) {
		o.ignore = append(o.ignore, patterns...)
	}
}

// WithDebounce collapses events arriving within d of each other into one
// callback carrying the last event. Zero or negative keeps one callback per
// event.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = max(d, 0)
	}
}

// WithLogger sets the logger for start failures and fsnotify errors.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOptions() options {
	return options{
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "watch"}),
	}
}
