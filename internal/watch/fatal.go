// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"errors"
	"slices"
	"syscall"
)

// sessionLost reports whether err leaves the session unable to deliver
// further events. Anything else from fsnotify is logged and the session
// keeps running.
func sessionLost(err error) bool {
	var errno syscall.Errno
	return errors.As(err, &errno) && slices.Contains(lostErrnos, errno)
}
