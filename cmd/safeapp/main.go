package main

import (
	"os"

	"safeapp/cmd/safeapp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
