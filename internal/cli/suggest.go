package cli

import (
	"context"
	"fmt"

	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/models"
	"github.com/edgehq/edge-cli/internal/suggest"
	"github.com/spf13/cobra"
)

var suggestRefresh bool

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Proactive suggestions from your AI executives",
	Long: `Show proactive suggestions from your AI executives. Fetched sets are
cached for five minutes; --refresh forces a new generation.

Subcommands:
  act      Turn a suggestion into a task on the board
  dismiss  Hide a suggestion and show the rest

Examples:
  edge suggest
  edge suggest --refresh
  edge suggest act 2
  edge suggest dismiss 1`,
	Args: cobra.NoArgs,
	RunE: runSuggestList,
}

var suggestActCmd = &cobra.Command{
	Use:   "act <number>",
	Short: "Turn a suggestion into a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestAct,
}

var suggestDismissCmd = &cobra.Command{
	Use:   "dismiss <number>",
	Short: "Hide a suggestion and show the rest",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestDismiss,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestRefresh, "refresh", false, "discard the cache and fetch a fresh set")

	suggestCmd.AddCommand(suggestActCmd)
	suggestCmd.AddCommand(suggestDismissCmd)
}

func suggestController() (*suggest.Controller, error) {
	sess, err := requireSession()
	if err != nil {
		return nil, err
	}
	return suggest.NewController(api, bus, respCache, sess.User), nil
}

func printSuggestions(suggestions []models.Suggestion, cached bool) {
	if len(suggestions) == 0 {
		fmt.Println("No suggestions right now. Try again after some chat activity.")
		return
	}

	source := "fresh"
	if cached {
		source = "cached"
	}
	fmt.Printf("Suggestions (%s):\n\n", source)
	for i, s := range suggestions {
		from := "team"
		if s.FromAgent != nil {
			from = string(*s.FromAgent)
		}
		fmt.Printf("%d. [%s/%s] %s\n", i+1, from, s.Priority, s.Message)
		if s.Action != "" {
			fmt.Printf("   -> %s\n", s.Action)
		}
	}
	fmt.Println("\nUse 'edge suggest act <number>' to put one on the task board.")
}

func runSuggestList(cmd *cobra.Command, args []string) error {
	ctrl, err := suggestController()
	if err != nil {
		return err
	}

	if suggestRefresh {
		fmt.Println("Generating fresh suggestions, this can take a moment...")
		suggestions, err := ctrl.Refresh(context.Background())
		if err != nil {
			return fmt.Errorf("%s", client.Detail(err, "could not refresh suggestions"))
		}
		printSuggestions(suggestions, false)
		return nil
	}

	suggestions, cached, err := ctrl.Load(context.Background())
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not load suggestions"))
	}
	printSuggestions(suggestions, cached)
	return nil
}

func runSuggestDismiss(cmd *cobra.Command, args []string) error {
	var number int
	if _, err := fmt.Sscanf(args[0], "%d", &number); err != nil || number < 1 {
		return fmt.Errorf("invalid suggestion number %q", args[0])
	}

	ctrl, err := suggestController()
	if err != nil {
		return err
	}

	if _, _, err := ctrl.Load(context.Background()); err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not load suggestions"))
	}
	if err := ctrl.Dismiss(number - 1); err != nil {
		return err
	}

	visible, _ := ctrl.Visible()
	printSuggestions(visible, true)
	return nil
}

func runSuggestAct(cmd *cobra.Command, args []string) error {
	var number int
	if _, err := fmt.Sscanf(args[0], "%d", &number); err != nil || number < 1 {
		return fmt.Errorf("invalid suggestion number %q", args[0])
	}

	ctrl, err := suggestController()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if _, _, err := ctrl.Load(ctx); err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not load suggestions"))
	}

	task, err := ctrl.TakeAction(ctx, number-1)
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not create the task"))
	}
	fmt.Printf("Created task %s, assigned to %s.\n", task.ID, task.AssignedToRole)
	return nil
}
