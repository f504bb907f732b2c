package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the saved session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	sess, err := store.Load()
	if err != nil {
		fmt.Println("No active session.")
		return nil
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	respCache.Invalidate("suggestions_" + sess.User.ID)

	fmt.Printf("Signed out %s.\n", sess.User.Email)
	return nil
}
