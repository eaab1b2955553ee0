// Package main is the careerconnect command-line entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careerconnect",
	Short: "Candidate-job matching and ranking engine",
	Long: `CareerConnect scores active job postings against a candidate's stored
profile, resume, and application history, and returns a ranked list of
recommendations.

Run "careerconnect serve" to start the HTTP API, or
"careerconnect recommend --user <id>" for a one-shot ranking.`,
}

func main() {
	// Load .env file if it exists (ignore errors, env vars are optional)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
