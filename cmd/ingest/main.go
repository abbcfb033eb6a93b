// Package main is the entry point for the mlingest binary.
package main

import (
	"os"

	"mlingest/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
