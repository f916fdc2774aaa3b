// Package main is the entry point for procgen.
package main

import (
	"fmt"
	"os"

	"github.com/procdata/procgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
