// SPDX-License-Identifier: MPL-2.0

// Package watch notifies callers about changes to the icons directory.
//
// A Session holds one non-recursive fsnotify watch on the directory and calls
// back once per qualifying event: a create, write, remove, rename or chmod of
// a file whose name ends in ".svg" and that no ignore glob matches. The watch
// is coarse: the callback learns that something changed, not what to rebuild.
//
// Starting never fails loudly. A missing directory, or any other setup
// failure, is logged and yields a nil *Session, which is safe to Stop.
package watch
