package main

import (
	"os"

	"github.com/dalemusser/tourismboard/cmd/tourismctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
