package cli

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/edgehq/edge-cli/internal/chat"
	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/models"
	"github.com/spf13/cobra"
)

var chatMessage string

var chatCmd = &cobra.Command{
	Use:   "chat [role]",
	Short: "Talk to your AI executives",
	Long: `Open an interactive chat with one of your AI executives. Tab
switches between them; each keeps their own conversation.

With --message the reply is printed directly and the command exits,
which is handy for scripting.

Examples:
  edge chat
  edge chat cmo
  edge chat cto --message "Review our deployment setup"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "send one message and print the reply")
}

func runChat(cmd *cobra.Command, args []string) error {
	sess, err := requireSession()
	if err != nil {
		return err
	}

	agents := models.AIRoles(sess.User.Role)
	role := agents[0]
	if len(args) == 1 {
		role, err = models.ParseRole(args[0])
		if err != nil {
			return err
		}
		if role == sess.User.Role {
			return fmt.Errorf("you are the %s; talk to %v instead", role, agents)
		}
	}

	// One-shot mode: no TUI, no reveal animation.
	if chatMessage != "" {
		resp, err := api.Chat(context.Background(), models.ChatRequest{
			UserID:     sess.User.ID,
			Role:       role,
			Message:    chatMessage,
			IsFromUser: true,
		})
		if err != nil {
			return fmt.Errorf("%s", client.Detail(err, "the agent did not answer"))
		}
		fmt.Printf("%s: %s\n", resp.AgentRole, resp.Message)
		return nil
	}

	ctrl := chat.NewController(api, sess.User, role, chat.DefaultRevealInterval)
	defer ctrl.Close()

	model := newChatModel(ctrl, sess.User, agents)
	program := tea.NewProgram(model)
	ctrl.OnChange(func() {
		program.Send(transcriptChangedMsg{})
	})

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run chat: %w", err)
	}
	return nil
}
