package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghanatheyakash/Resume-builder/internal/config"
	"github.com/ghanatheyakash/Resume-builder/internal/llm"
	"github.com/ghanatheyakash/Resume-builder/internal/observability"
)

func newCheckBackendCmd(root *rootOptions) *cobra.Command {
	var backend backendFlags

	cmd := &cobra.Command{
		Use:   "check-backend",
		Short: "Check that the generation backend is reachable and serves the model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(cmd, root, func(c *config.Config) { backend.apply(cmd, c) })
			if err != nil {
				return err
			}

			printer := observability.NewPrinter(cmd.OutOrStdout())
			llmCfg := cfg.LLMConfig()
			printer.Step("Checking %s backend", llmCfg.Provider)

			client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey, llm.WithLogger(newLogger(cfg)))
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := client.Available(ctx); err != nil {
				printer.Warn("Backend unavailable: %v", err)
				printer.Warn("Resumes will be built by the offline parser")
				return fmt.Errorf("backend unavailable")
			}
			printer.Success("Backend ready (model %s)", client.Model())
			return nil
		},
	}

	backend.register(cmd)
	return cmd
}
