package cli

import (
	"fmt"

	"github.com/edgehq/edge-cli/internal/models"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active session",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	sess, err := requireSession()
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", sess.User.Email, sess.User.Role)
	if verbose {
		fmt.Printf("  ID:       %s\n", sess.User.ID)
		fmt.Printf("  API:      %s\n", cfg.APIURL)
		fmt.Printf("  Session:  %s\n", store.Path())
		fmt.Printf("  Agents:   %v\n", models.AIRoles(sess.User.Role))
	}
	return nil
}
