package main

import (
	"os"

	"github.com/mpetrov/lifeline/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
