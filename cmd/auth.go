package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/betaseries/betaseries"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth <login> <password>",
	Short: "Authenticate a member and print the token",
	Long: `Authenticate with members/auth and print the member token.
The password is hashed with MD5 before it is sent, as the API expects.

Use the printed token with --token or BETASERIES_TOKEN.`,
	Args: cobra.ExactArgs(2),
	RunE: runAuth,
}

func runAuth(cmd *cobra.Command, args []string) error {
	res, err := client.MembersAuth(cmd.Context(), args[0], betaseries.HashPassword(args[1]))
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	token := res.String("token")
	if token == "" {
		return fmt.Errorf("authentication failed: no token in response")
	}

	if user, ok := res.Object("user"); ok {
		logger.Info().
			Str("login", user.String("login")).
			Str("id", user.String("id")).
			Msg("Authenticated")
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
