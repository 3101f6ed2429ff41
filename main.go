// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/invowk/iconsprite/cmd/iconsprite"

func main() {
	cmd.Execute()
}
