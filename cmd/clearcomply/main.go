// Package main provides the entry point for the ClearComply onboarding server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clearcomply",
	Short: "ClearComply onboarding service",
	Long:  "ClearComply manages company onboarding processes and candidate lifecycles, with AI-assisted application form generation and document-completeness checks, via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
