package main

import "refield/cmd/refield-cli/cmd"

func main() {
	cmd.Execute()
}
