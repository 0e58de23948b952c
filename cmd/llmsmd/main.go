// Package main is the entry point for the llmsmd CLI.
package main

import (
	"os"

	"github.com/jmylchreest/llmsmd/cmd/llmsmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
