// Package main provides the entry point for the webfolio agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "webfolio_agent",
	Short: "Personal website generator",
	Long:  "webfolio_agent turns a resume into a complete personal website through conversational instructions, and can generate and review GitHub profiles.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
