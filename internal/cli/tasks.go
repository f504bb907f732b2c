package cli

import (
	"context"
	"fmt"

	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/models"
	"github.com/edgehq/edge-cli/internal/tasks"
	"github.com/spf13/cobra"
)

var (
	tasksStatus    string
	tasksRole      string
	taskAddRole    string
	taskEditText   string
	taskEditStatus string
	taskRmYes      bool
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage the shared task board",
	Long: `List and manage the task board you share with your AI executives.

Subcommands:
  list     List tasks (default)
  add      Create a task
  cycle    Advance a task to its next status
  edit     Edit a task's description or status
  rm       Delete a task

Examples:
  edge tasks
  edge tasks --status pending
  edge tasks --role cto
  edge tasks add "Draft the pitch deck" --role ceo
  edge tasks cycle 42
  edge tasks edit 42 --status completed`,
	Args: cobra.NoArgs,
	RunE: runTasksList,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runTasksList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskCycleCmd = &cobra.Command{
	Use:   "cycle <task-id>",
	Short: "Advance a task to its next status",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskCycle,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit a task's description or status",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

func init() {
	tasksCmd.Flags().StringVarP(&tasksStatus, "status", "s", "", "filter by status: pending, in_progress or completed")
	tasksCmd.Flags().StringVarP(&tasksRole, "role", "r", "", "filter by assigned role")

	taskAddCmd.Flags().StringVarP(&taskAddRole, "role", "r", "", "assign to role (defaults to your own)")

	taskEditCmd.Flags().StringVarP(&taskEditText, "description", "d", "", "new description")
	taskEditCmd.Flags().StringVarP(&taskEditStatus, "status", "s", "", "new status")

	taskListCmd.Flags().StringVarP(&tasksStatus, "status", "s", "", "filter by status: pending, in_progress or completed")
	taskListCmd.Flags().StringVarP(&tasksRole, "role", "r", "", "filter by assigned role")

	taskRmCmd.Flags().BoolVarP(&taskRmYes, "yes", "y", false, "skip the confirmation prompt")

	tasksCmd.AddCommand(taskListCmd)
	tasksCmd.AddCommand(taskAddCmd)
	tasksCmd.AddCommand(taskCycleCmd)
	tasksCmd.AddCommand(taskEditCmd)
	tasksCmd.AddCommand(taskRmCmd)
}

// taskController loads the session and builds a controller around it.
func taskController(ctx context.Context) (*tasks.Controller, models.User, error) {
	sess, err := requireSession()
	if err != nil {
		return nil, models.User{}, err
	}
	ctrl := tasks.NewController(api, bus, sess.User)
	if err := ctrl.Load(ctx, nil); err != nil {
		ctrl.Close()
		return nil, models.User{}, fmt.Errorf("%s", client.Detail(err, "could not load tasks"))
	}
	return ctrl, sess.User, nil
}

func runTasksList(cmd *cobra.Command, args []string) error {
	var statusFilter *models.TaskStatus
	if tasksStatus != "" {
		status, err := models.ParseTaskStatus(tasksStatus)
		if err != nil {
			return err
		}
		statusFilter = &status
	}
	var roleFilter *models.Role
	if tasksRole != "" {
		role, err := models.ParseRole(tasksRole)
		if err != nil {
			return err
		}
		roleFilter = &role
	}

	ctx := context.Background()
	sess, err := requireSession()
	if err != nil {
		return err
	}
	ctrl := tasks.NewController(api, bus, sess.User)
	defer ctrl.Close()

	// A role filter uses the server's role endpoint, so the list only
	// ever holds that role's tasks. Status stays a client-side filter.
	if roleFilter != nil {
		err = ctrl.LoadByRole(ctx, *roleFilter)
	} else {
		err = ctrl.Load(ctx, nil)
	}
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not load tasks"))
	}

	list := ctrl.Filter(statusFilter)

	counts := ctrl.Counts()
	fmt.Printf("Tasks: %d pending, %d in progress, %d completed\n\n",
		counts[models.StatusPending], counts[models.StatusInProgress], counts[models.StatusCompleted])

	if len(list) == 0 {
		fmt.Println("Nothing matches.")
		return nil
	}

	for _, t := range list {
		fmt.Printf("%-12s %-4s %-12s %s\n", t.ID, t.AssignedToRole, t.Status, t.Description)
		if verbose && len(t.Resources) > 0 {
			fmt.Printf("  Resources: %v\n", t.Resources)
		}
	}
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	sess, err := requireSession()
	if err != nil {
		return err
	}

	role := sess.User.Role
	if taskAddRole != "" {
		role, err = models.ParseRole(taskAddRole)
		if err != nil {
			return err
		}
	}

	ctrl := tasks.NewController(api, bus, sess.User)
	defer ctrl.Close()

	task, err := ctrl.Create(ctx, role, args[0])
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not create the task"))
	}
	fmt.Printf("Created %s, assigned to %s.\n", task.ID, task.AssignedToRole)
	return nil
}

func runTaskCycle(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	ctrl, _, err := taskController(ctx)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	task, err := ctrl.CycleStatus(ctx, args[0])
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not update the task"))
	}
	fmt.Printf("%s is now %s.\n", task.ID, task.Status)
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	if taskEditText == "" && taskEditStatus == "" {
		return fmt.Errorf("nothing to change: pass --description or --status")
	}

	var update models.TaskUpdate
	if taskEditText != "" {
		update.Description = &taskEditText
	}
	if taskEditStatus != "" {
		status, err := models.ParseTaskStatus(taskEditStatus)
		if err != nil {
			return err
		}
		update.Status = &status
	}

	ctx := context.Background()
	ctrl, _, err := taskController(ctx)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	task, err := ctrl.Update(ctx, args[0], update)
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not update the task"))
	}
	fmt.Printf("Updated %s (%s).\n", task.ID, task.Status)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	ctrl, _, err := taskController(ctx)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if !taskRmYes {
		fmt.Printf("Delete task %s? [y/N] ", args[0])
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctrl.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not delete the task"))
	}
	fmt.Printf("Deleted %s.\n", args[0])
	return nil
}
