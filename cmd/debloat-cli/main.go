package main

import "debloat/cmd/debloat-cli/cmd"

func main() {
	cmd.Execute()
}
