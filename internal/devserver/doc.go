// SPDX-License-Identifier: MPL-2.0

// Package devserver is a development host for the sprite plugin.
//
// It serves a site directory over HTTP, passes every HTML page through the
// plugin so the current sprite is injected before </body>, and adds a small
// client script that reloads the page when a full-reload message arrives on
// the Server-Sent Events stream. Endpoints:
//
//	/                         static files from the site root
//	/__iconsprite/events      SSE stream of reload messages
//	/__iconsprite/sprite.svg  the current sprite (204 when empty)
//	/metrics                  Prometheus metrics
package devserver
