// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

const (
	KindCreate Kind = "create"
	KindWrite  Kind = "write"
	KindRemove Kind = "remove"
	KindRename Kind = "rename"
	KindChmod  Kind = "chmod"
)

type (
	// Kind names the file operation behind an Event.
	Kind string

	// Event is one qualifying change in the watched directory.
	Event struct {
		Kind Kind
		// Name is the file name, without directory.
		Name string
		// Path is the full path reported by the OS.
		Path string
	}
)

func (e Event) String() string {
	return string(e.Kind) + " " + e.Name
}

// kindOf maps an fsnotify operation to a Kind. When several bits are set the
// first of create, write, remove, rename, chmod wins.
func kindOf(op fsnotify.Op) (Kind, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return KindCreate, true
	case op.Has(fsnotify.Write):
		return KindWrite, true
	case op.Has(fsnotify.Remove):
		return KindRemove, true
	case op.Has(fsnotify.Rename):
		return KindRename, true
	case op.Has(fsnotify.Chmod):
		return KindChmod, true
	default:
		return "", false
	}
}

func newEvent(evt fsnotify.Event) (Event, bool) {
	kind, ok := kindOf(evt.Op)
	if !ok {
		return Event{}, false
	}
	return Event{Kind: kind, Name: filepath.Base(evt.Name), Path: evt.Name}, true
}
