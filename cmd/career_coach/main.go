// Package main provides the career_coach CLI: the HTTP API server and
// offline roadmap, skill gap and career commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "career_coach",
	Short:         "AI Career Coach API server and CLI",
	Long:          "AI Career Coach recommends careers, analyzes skill gaps and resumes, builds learning roadmaps and chats with learners over a REST API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log model attempts and fallbacks to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
