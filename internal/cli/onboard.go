package cli

import (
	"context"
	"fmt"

	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/models"
	"github.com/edgehq/edge-cli/internal/session"
	"github.com/spf13/cobra"
)

var (
	onboardEmail string
	onboardRole  string
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create your founder account and AI executive team",
	Long: `Create a founder account. You pick one executive role; the two
complementary AI executives are created alongside and seeded with
starter tasks.

Examples:
  edge onboard --email founder@acme.dev --role ceo
  edge onboard --email founder@acme.dev --role cto`,
	Args: cobra.NoArgs,
	RunE: runOnboard,
}

func init() {
	onboardCmd.Flags().StringVarP(&onboardEmail, "email", "e", "", "account email (required)")
	onboardCmd.Flags().StringVarP(&onboardRole, "role", "r", "", "your role: ceo, cto or cmo (required)")
	onboardCmd.MarkFlagRequired("email")
	onboardCmd.MarkFlagRequired("role")
}

func runOnboard(cmd *cobra.Command, args []string) error {
	email := onboardEmail
	role, err := models.ParseRole(onboardRole)
	if err != nil {
		return err
	}

	ctx := context.Background()
	fmt.Println("Setting up your AI executive team, this can take a moment...")
	user, err := api.Onboard(ctx, email, role)
	if err != nil {
		return fmt.Errorf("onboard: %s", client.Detail(err, "onboarding failed"))
	}

	if err := store.Save(&session.Session{User: *user}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	fmt.Printf("Welcome aboard. You are the %s of your startup.\n\n", user.Role)
	for _, r := range models.AIRoles(user.Role) {
		fmt.Printf("  %s  %s\n", r, r.Description())
	}
	fmt.Println("\nStart with 'edge chat' or check 'edge tasks'.")
	return nil
}
