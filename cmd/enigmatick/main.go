package main

import (
	"os"

	"enigmatick/cmd/enigmatick/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
