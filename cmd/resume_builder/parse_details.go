package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghanatheyakash/Resume-builder/internal/parsing"
)

func newParseDetailsCmd() *cobra.Command {
	var detailsPath, jobPath string

	cmd := &cobra.Command{
		Use:   "parse-details",
		Short: "Parse candidate details into resume JSON without a generation backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			details, err := readTextFile(detailsPath, "details")
			if err != nil {
				return err
			}

			var jobDescription string
			if jobPath != "" {
				data, err := os.ReadFile(jobPath)
				if err != nil {
					return fmt.Errorf("failed to read job file: %w", err)
				}
				jobDescription = string(data)
			}

			record := parsing.ParseDetails(details, jobDescription, "")
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(record)
		},
	}

	cmd.Flags().StringVarP(&detailsPath, "details", "d", "", "Path to the candidate details text file")
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Path to the job description text file")
	return cmd
}
