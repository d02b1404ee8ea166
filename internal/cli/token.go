package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/services"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenIssueCmd)

	tokenIssueCmd.Flags().Duration("ttl", 0, "Token lifetime, defaults to JWT_EXPIRY_DURATION")
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API bearer tokens",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue USER_ID",
	Short: "Issue a signed bearer token for USER_ID",
	Long: `Issue an HS256 token signed with JWT_SECRET. User management lives upstream,
so this is how operators and integration tests obtain credentials.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set")
		}
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			ttl = cfg.JWTExpiryDuration
		}

		tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, ttl)
		token, expiresAt, err := tokens.GenerateAccessToken(actorContext(cmd.Context()), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format(time.RFC3339))
		return nil
	},
}
