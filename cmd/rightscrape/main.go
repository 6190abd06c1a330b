// Package main is the entry point for the rightscrape CLI.
package main

import (
	"os"

	"github.com/jmylchreest/rightscrape/cmd/rightscrape/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
