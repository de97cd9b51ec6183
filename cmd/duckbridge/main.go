// Package main is the duckbridge entry point.
package main

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/duckbridge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
