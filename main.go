// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/unistylus/unistylus/cmd/unistylus"

func main() {
	cmd.Execute()
}
