package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghanatheyakash/Resume-builder/internal/config"
	"github.com/ghanatheyakash/Resume-builder/internal/server"
)

func newTokenCmd(root *rootOptions) *cobra.Command {
	var (
		subject   string
		ttl       time.Duration
		jwtSecret string
	)

	cmd := &cobra.Command{
		Use:     "token",
		Short:   "Create a bearer token for the HTTP API",
		Example: `  JWT_SECRET=... resume_builder token --subject ci --ttl 720h`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, root, func(c *config.Config) {
				if cmd.Flags().Changed("jwt-secret") {
					c.JWTSecret = jwtSecret
				}
			})
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return fmt.Errorf("a JWT secret is required (--jwt-secret or %s)", config.EnvJWTSecret)
			}

			tokens, err := server.NewTokenService(cfg.JWTSecret)
			if err != nil {
				return err
			}
			token, err := tokens.Issue(subject, ttl)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "cli", "Name of the client the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", server.DefaultTokenTTL, "Token lifetime")
	cmd.Flags().StringVar(&jwtSecret, "jwt-secret", "", "Signing secret (defaults to JWT_SECRET)")
	return cmd
}
