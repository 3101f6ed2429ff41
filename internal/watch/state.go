// SPDX-License-Identifier: MPL-2.0

package watch

const (
	// StateRunning indicates the event loop is delivering events.
	StateRunning State = iota
	// StateStopped is terminal: Stop released the watch handle.
	StateStopped
	// StateFailed is terminal: a fatal fsnotify error ended the event loop.
	StateFailed
)

// State is the lifecycle state of a Session.
type State int32

// String returns a human-readable representation of the session state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if the state is a terminal state (Stopped or Failed).
func (s State) IsTerminal() bool {
	return s == StateStopped || s == StateFailed
}
