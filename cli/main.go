package main

import (
	"os"

	"github.com/satishbabariya/pure-orm/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
