package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"journeybuilder/pkg/auth"
)

func (c *cli) tokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		roles  []string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}

			gen, err := auth.NewJWTGenerator(cfg.JWTSecret, cfg.JWTIssuer, nil, ttl)
			if err != nil {
				return err
			}
			token, err := gen.GenerateToken(userID, email, roles)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(c.out, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "journeyctl", "subject of the token")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringSliceVar(&roles, "role", []string{"editor"}, "role claims")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
