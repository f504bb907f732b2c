package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginWithToken bool

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in to an existing founder account",
	Long: `Look up an existing account by email and save it as the active
session on this machine.

With --token you are prompted for an API access token, which is stored
alongside the session and sent as a bearer token on every request.

Examples:
  edge login founder@acme.dev
  edge login founder@acme.dev --token`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().BoolVar(&loginWithToken, "token", false, "prompt for an API access token")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := args[0]

	var token string
	if loginWithToken {
		fmt.Fprint(os.Stderr, "Access token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	}

	user, err := api.GetUserByEmail(context.Background(), email)
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("no account for %s: run 'edge onboard %s --role <role>' first", email, email)
		}
		return fmt.Errorf("login: %s", client.Detail(err, "lookup failed"))
	}

	if err := store.Save(&session.Session{User: *user, AccessToken: token}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	fmt.Printf("Signed in as %s (%s).\n", user.Email, user.Role)
	return nil
}
