// Package main is the entry point for the opensky CLI binary.
package main

import (
	"os"

	"github.com/junzis/opensky-go/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
