// Package main provides the resume_builder command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	configPath string
	verbose    bool
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	root := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "resume_builder",
		Short: "Generate validated resumes from job descriptions",
		Long: `resume_builder turns a job description and free-text candidate details into a
validated, structured resume rendered as HTML and PDF.

A local Ollama model (or Gemini) generates the structured data; when the backend is
unavailable a deterministic parser is used instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&root.configPath, "config", "", "Path to a JSON or YAML config file (flags override its values)")
	cmd.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "Print detailed progress")
	cmd.PersistentFlags().StringVar(&root.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&root.logFormat, "log-format", "", "Log format: pretty or json")

	cmd.AddCommand(
		newGenerateCmd(root),
		newFromJobsCmd(root),
		newValidateCmd(),
		newParseDetailsCmd(),
		newCheckBackendCmd(root),
		newResumesCmd(root),
		newRunsCmd(root),
		newServeCmd(root),
		newTokenCmd(root),
	)
	return cmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
