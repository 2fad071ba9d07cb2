package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghanatheyakash/Resume-builder/internal/observability"
	"github.com/ghanatheyakash/Resume-builder/internal/validation"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <resume_data.json>",
		Short: "Check a resume JSON document against the resume schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read resume file: %w", err)
			}

			var doc any
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("invalid JSON in %s: %w", args[0], err)
			}

			if errs := validation.Validate(doc); len(errs) > 0 {
				observability.NewPrinter(cmd.OutOrStdout()).PrintValidationErrors(errs)
				return fmt.Errorf("%s is not a valid resume (%d errors)", args[0], len(errs))
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
			return nil
		},
	}
}
