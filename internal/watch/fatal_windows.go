// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import "syscall"

// lostErrnos end a session on Windows. ReadDirectoryChangesW has no watch
// limit, but the handle can be exhausted (4), invalidated when the icons
// directory is deleted (6), or the notification buffer cannot be
// allocated (8).
var lostErrnos = []syscall.Errno{
	syscall.Errno(4),
	syscall.Errno(6),
	syscall.Errno(8),
}
