package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ghanatheyakash/Resume-builder/internal/config"
	"github.com/ghanatheyakash/Resume-builder/internal/db"
)

func newRunsCmd(root *rootOptions) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect resume generations recorded in the database",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "db-url", "", "PostgreSQL URL (defaults to DATABASE_URL)")

	connect := func(cmd *cobra.Command) (*db.DB, error) {
		cfg, err := loadConfig(cmd, root, func(c *config.Config) {
			if cmd.Flags().Changed("db-url") {
				c.DatabaseURL = databaseURL
			}
		})
		if err != nil {
			return nil, err
		}
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("a database URL is required (--db-url or %s)", config.EnvDatabaseURL)
		}
		return db.Connect(cmd.Context(), cfg.DatabaseURL)
	}

	cmd.AddCommand(newRunsListCmd(connect), newRunsShowCmd(connect))
	return cmd
}

type connectFunc func(cmd *cobra.Command) (*db.DB, error)

func newRunsListCmd(connect connectFunc) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent generations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := connect(cmd)
			if err != nil {
				return err
			}
			defer database.Close()

			runs, err := database.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(out, "No runs recorded.")
				return nil
			}
			for _, r := range runs {
				_, _ = fmt.Fprintf(out, "%s  %s  %s at %s  [%s, %s, %d attempt(s)]\n",
					r.ID, r.CreatedAt.Local().Format(time.DateTime), r.JobTitle, r.Company, r.Template, r.Source, r.Attempts)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", db.DefaultListLimit, "Maximum runs to list")
	return cmd
}

func newRunsShowCmd(connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a recorded generation as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run ID %q: %w", args[0], err)
			}

			database, err := connect(cmd)
			if err != nil {
				return err
			}
			defer database.Close()

			run, err := database.GetRun(cmd.Context(), id)
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", id)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		},
	}
}
