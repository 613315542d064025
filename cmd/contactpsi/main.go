package main

import (
	"os"

	"contactpsi/cmd/contactpsi/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
