package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghanatheyakash/Resume-builder/internal/config"
	"github.com/ghanatheyakash/Resume-builder/internal/observability"
	"github.com/ghanatheyakash/Resume-builder/internal/storage"
)

func newResumesCmd(root *rootOptions) *cobra.Command {
	var resumesDir string

	cmd := &cobra.Command{
		Use:   "resumes",
		Short: "Manage generated resume folders",
	}
	cmd.PersistentFlags().StringVar(&resumesDir, "resumes-dir", "", "Directory holding one folder per generated resume")

	manager := func(cmd *cobra.Command) (*storage.Manager, error) {
		cfg, err := loadConfig(cmd, root, func(c *config.Config) {
			if cmd.Flags().Changed("resumes-dir") {
				c.ResumesDir = resumesDir
			}
		})
		if err != nil {
			return nil, err
		}
		return storage.NewManager(cfg.ResumesDir), nil
	}

	cmd.AddCommand(
		newResumesListCmd(manager),
		newResumesStatsCmd(manager),
		newResumesPathCmd(manager),
		newResumesDeleteCmd(manager),
	)
	return cmd
}

type managerFunc func(cmd *cobra.Command) (*storage.Manager, error)

func newResumesListCmd(manager managerFunc) *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List generated resumes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := manager(cmd)
			if err != nil {
				return err
			}
			resumes, err := m.List()
			if err != nil {
				return err
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintResumeList(resumes, details)
			return nil
		},
	}
	cmd.Flags().BoolVar(&details, "details", false, "Show files and paths for each resume")
	return cmd
}

func newResumesStatsCmd(manager managerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show statistics about generated resumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := manager(cmd)
			if err != nil {
				return err
			}
			stats, err := m.Stats(time.Now())
			if err != nil {
				return err
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintStats(stats)
			return nil
		},
	}
}

func newResumesPathCmd(manager managerFunc) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "path <folder>",
		Short: "Print the path of a resume file in a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager(cmd)
			if err != nil {
				return err
			}
			path, err := m.FindFile(args[0], format)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "html", "File format to locate: html or pdf")
	return cmd
}

func newResumesDeleteCmd(manager managerFunc) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <folder>",
		Short: "Delete a resume folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager(cmd)
			if err != nil {
				return err
			}
			info, err := m.Info(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes {
				_, _ = fmt.Fprintf(out, "Delete %s (%s at %s)? Type 'yes' to confirm: ", info.Folder, info.JobTitle, info.Company)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if strings.TrimSpace(strings.ToLower(answer)) != "yes" {
					_, _ = fmt.Fprintln(out, "Deletion cancelled")
					return nil
				}
			}

			if err := m.Delete(info.Folder); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "Deleted %s\n", info.Folder)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}
