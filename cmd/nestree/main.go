package main

import (
	"fmt"
	"os"

	"github.com/harrison/nestree/internal/cmd"
)

// Version is the current version of the nestree application
const Version = "0.1.0"

func main() {
	if cmd.Version == "dev" {
		cmd.Version = Version
	}
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
