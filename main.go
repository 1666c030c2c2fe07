// ABOUTME: Entry point for the planventure CLI
// ABOUTME: Command-line client for the PlanVenture trip planning API

package main

import (
	"fmt"
	"os"

	"github.com/planventure/planventure-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
