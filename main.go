package main

import (
	"github.com/datstma/smhash/cmd"
)

func main() {
	// Viper manages the command-line flags, so running this binary means
	// passing a subcommand such as "mine", which triggers the Mine()
	// function defined in cmd/mine.go. The flags for each subcommand are
	// also all defined in the cmd package.
	cmd.Execute()
}
