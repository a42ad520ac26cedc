// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/fortytwo/demeter/cmd/demeter"

func main() {
	cmd.Execute()
}
