// SPDX-License-Identifier: MPL-2.0

// Package plugin binds the sprite builder and the directory watcher to the
// lifecycle of a host that serves pages: configure the server, transform each
// index page, and tear down when the build ends.
package plugin
