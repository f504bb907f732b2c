package cli

import (
	"context"
	"fmt"

	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/models"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend health and agent activity",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := api.Health(ctx); err != nil {
		return fmt.Errorf("backend at %s is unreachable: %w", cfg.APIURL, err)
	}
	fmt.Printf("Backend %s: ok\n", cfg.APIURL)

	sess, err := requireSession()
	if err != nil {
		return err
	}

	overview, err := api.GetAgentsStatus(ctx, sess.User.ID)
	if err != nil {
		return fmt.Errorf("agent status: %s", client.Detail(err, "fetch failed"))
	}

	fmt.Printf("Agents: %d active of %d\n\n", overview.ActiveAgents, overview.TotalAgents)
	for _, role := range models.AIRoles(sess.User.Role) {
		agent, ok := overview.Agents[role]
		if !ok {
			continue
		}
		fmt.Printf("%s  [%s]  %d messages, last active %s\n",
			role, agent.Status, agent.MessageCount, agent.LastActive)
		if agent.ContextSummary != "" {
			fmt.Printf("  %s\n", agent.ContextSummary)
		}
		if verbose && len(agent.RecentTopics) > 0 {
			fmt.Printf("  Topics: %v\n", agent.RecentTopics)
		}
	}
	return nil
}
