package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/zeitdreher-backend/internal/auth"
)

var tokenRole string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development access token for --user",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenRole, "role", "user", "role claim (admin unlocks /api/admin)")
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(userFlag)
	if err != nil {
		return fmt.Errorf("--user: %w", err)
	}

	tok, err := auth.NewVerifier(cfg.Auth).GenerateAccessToken(userID, tokenRole)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
