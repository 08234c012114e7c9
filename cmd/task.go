// ABOUTME: Task subcommands: list, add, update, delete
// ABOUTME: Tasks are addressed under their owning project for cache invalidation

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
	"github.com/reemkandil/askbob-project-mgmt/internal/tracker"
)

var (
	taskTitle       string
	taskDescription string
	taskPriority    string
	taskStatus      string
	taskDueDate     string
	taskYes         bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks within a project",
}

var taskListCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List a project's tasks grouped by status",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runExit(func(ctx context.Context, w io.Writer) int {
			return runTaskList(ctx, w, args[0])
		})
	},
}

var taskAddCmd = &cobra.Command{
	Use:   "add <project-id>",
	Short: "Add a task to a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runExit(func(ctx context.Context, w io.Writer) int {
			return runTaskAdd(ctx, w, args[0])
		})
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <project-id> <task-id>",
	Short: "Update a task's fields or status",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runExit(func(ctx context.Context, w io.Writer) int {
			return runTaskUpdate(ctx, w, args[0], args[1], cmd)
		})
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <project-id> <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runExit(func(ctx context.Context, w io.Writer) int {
			return runTaskDelete(ctx, w, args[0], args[1], taskYes)
		})
	},
}

func init() {
	taskAddCmd.Flags().StringVar(&taskTitle, "title", "", "Task title")
	taskAddCmd.Flags().StringVar(&taskDescription, "description", "", "Task description")
	taskAddCmd.Flags().StringVar(&taskPriority, "priority", "", "Priority ("+priorityChoices()+"; server defaults to medium)")
	taskAddCmd.Flags().StringVar(&taskDueDate, "due", "", "Due date (YYYY-MM-DD)")
	taskAddCmd.MarkFlagRequired("title")

	taskUpdateCmd.Flags().StringVar(&taskTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVar(&taskDescription, "description", "", "New description")
	taskUpdateCmd.Flags().StringVar(&taskStatus, "status", "", "New status ("+taskStatusChoices()+")")
	taskUpdateCmd.Flags().StringVar(&taskPriority, "priority", "", "New priority ("+priorityChoices()+")")
	taskUpdateCmd.Flags().StringVar(&taskDueDate, "due", "", "New due date (YYYY-MM-DD)")

	taskDeleteCmd.Flags().BoolVar(&taskYes, "yes", false, "Skip the confirmation prompt")

	taskCmd.AddCommand(taskListCmd, taskAddCmd, taskUpdateCmd, taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}

func priorityChoices() string {
	var vals []string
	for _, p := range domain.TaskPriorities() {
		vals = append(vals, string(p))
	}
	return strings.Join(vals, ", ")
}

func taskStatusChoices() string {
	var vals []string
	for _, s := range domain.TaskStatuses() {
		vals = append(vals, string(s))
	}
	return strings.Join(vals, ", ")
}

func runTaskList(ctx context.Context, w io.Writer, projectID string) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	tasks, err := a.tracker.Tasks(ctx, projectID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(tasks, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks yet. Add a task to get started.")
		return 0
	}

	byStatus := make(map[domain.TaskStatus][]domain.Task)
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}
	for _, status := range domain.TaskStatuses() {
		group := byStatus[status]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", status.Label())
		for _, t := range group {
			line := fmt.Sprintf("  %s  [%s] %s", t.ID, t.Priority, t.Title)
			if t.DueDate != "" {
				line += "  (due " + t.DueDate + ")"
			}
			fmt.Fprintln(w, line)
		}
	}
	return 0
}

func runTaskAdd(ctx context.Context, w io.Writer, projectID string) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	t, err := a.tracker.CreateTask(ctx, projectID, tracker.CreateTaskInput{
		Title:       taskTitle,
		Description: taskDescription,
		Priority:    domain.TaskPriority(taskPriority),
		DueDate:     taskDueDate,
	})
	if err != nil {
		fmt.Fprintf(w, "Error creating task: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Created task %s (%s)\n", t.Title, t.ID)
	return 0
}

func runTaskUpdate(ctx context.Context, w io.Writer, projectID, taskID string, cmd *cobra.Command) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var input tracker.UpdateTaskInput
	if cmd.Flags().Changed("title") {
		input.Title = &taskTitle
	}
	if cmd.Flags().Changed("description") {
		input.Description = &taskDescription
	}
	if cmd.Flags().Changed("status") {
		status := domain.TaskStatus(taskStatus)
		input.Status = &status
	}
	if cmd.Flags().Changed("priority") {
		priority := domain.TaskPriority(taskPriority)
		input.Priority = &priority
	}
	if cmd.Flags().Changed("due") {
		due := tracker.NormalizeDueDate(taskDueDate)
		input.DueDate = &due
	}
	if input.Title == nil && input.Description == nil && input.Status == nil &&
		input.Priority == nil && input.DueDate == nil {
		fmt.Fprintln(w, "Nothing to update: pass --title, --description, --status, --priority, or --due.")
		return 1
	}

	t, err := a.tracker.UpdateTask(ctx, projectID, taskID, input)
	if err != nil {
		fmt.Fprintf(w, "Error updating task: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Updated task %s (status: %s)\n", t.Title, t.Status.Label())
	return 0
}

func runTaskDelete(ctx context.Context, w io.Writer, projectID, taskID string, skipConfirm bool) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if !skipConfirm {
		var confirmed bool
		prompt := huh.NewConfirm().
			Title("Are you sure you want to delete this task?").
			Value(&confirmed)
		if err := prompt.Run(); err != nil || !confirmed {
			fmt.Fprintln(w, "Aborted.")
			return 1
		}
	}

	if err := a.tracker.DeleteTask(ctx, projectID, taskID); err != nil {
		fmt.Fprintf(w, "Error deleting task: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Deleted task %s\n", taskID)
	return 0
}
