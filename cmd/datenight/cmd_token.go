package main

import (
	"fmt"
	"time"

	"datenight/internal/auth"

	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin token for the API",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "Who the token identifies")
	tokenCmd.Flags().StringVar(&tokenRole, "role", auth.RoleAdmin, "ADMIN or EDITOR")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	if err := cfg.Require("JWT_SECRET"); err != nil {
		return err
	}
	if tokenRole != auth.RoleAdmin && tokenRole != auth.RoleEditor {
		return fmt.Errorf("unknown role %q", tokenRole)
	}

	token, err := auth.GenerateToken(cfg.JWTSecret, tokenSubject, tokenRole, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
