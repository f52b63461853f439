// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/exeplan/exeplan/cmd/exeplan"

func main() {
	cmd.Execute()
}
