// ABOUTME: Project subcommands: list, show, create, update, delete
// ABOUTME: Reads go through the resource cache; writes invalidate it

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
	"github.com/reemkandil/askbob-project-mgmt/internal/tracker"
)

var (
	projectName        string
	projectDescription string
	projectStatus      string
	projectYes         bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Run: func(cmd *cobra.Command, args []string) {
		runExit(runProjectList)
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runExit(func(ctx context.Context, w io.Writer) int {
			return runProjectShow(ctx, w, args[0])
		})
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	Run: func(cmd *cobra.Command, args []string) {
		runExit(func(ctx context.Context, w io.Writer) int {
			return runProjectCreate(ctx, w, projectName, projectDescription)
		})
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a project's name, description, or status",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runExit(func(ctx context.Context, w io.Writer) int {
			return runProjectUpdate(ctx, w, args[0], cmd)
		})
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runExit(func(ctx context.Context, w io.Writer) int {
			return runProjectDelete(ctx, w, args[0], projectYes)
		})
	},
}

func init() {
	projectCreateCmd.Flags().StringVar(&projectName, "name", "", "Project name")
	projectCreateCmd.Flags().StringVar(&projectDescription, "description", "", "Project description")
	projectCreateCmd.MarkFlagRequired("name")

	projectUpdateCmd.Flags().StringVar(&projectName, "name", "", "New name")
	projectUpdateCmd.Flags().StringVar(&projectDescription, "description", "", "New description")
	projectUpdateCmd.Flags().StringVar(&projectStatus, "status", "",
		"New status ("+statusChoices()+")")

	projectDeleteCmd.Flags().BoolVar(&projectYes, "yes", false, "Skip the confirmation prompt")

	projectCmd.AddCommand(projectListCmd, projectShowCmd, projectCreateCmd, projectUpdateCmd, projectDeleteCmd)
	rootCmd.AddCommand(projectCmd)
}

// runExit wires signal handling and exit codes around a command body.
func runExit(fn func(context.Context, io.Writer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if exitCode := fn(ctx, os.Stdout); exitCode != 0 {
		os.Exit(exitCode)
	}
}

func statusChoices() string {
	var vals []string
	for _, s := range domain.ProjectStatuses() {
		vals = append(vals, string(s))
	}
	return strings.Join(vals, ", ")
}

func runProjectList(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	projects, err := a.tracker.Projects(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(projects, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects yet. Create your first project to get started.")
		return 0
	}
	for _, p := range projects {
		fmt.Fprintf(w, "%s  %-14s %s\n", p.ID, "["+p.Status.Label()+"]", p.Name)
	}
	return 0
}

func runProjectShow(ctx context.Context, w io.Writer, id string) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	p, err := a.tracker.Project(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(p, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s\nStatus:  %s\nCreated: %s\n", p.Name, p.Status.Label(), p.CreatedAt)
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
	return 0
}

func runProjectCreate(ctx context.Context, w io.Writer, name, description string) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	p, err := a.tracker.CreateProject(ctx, tracker.CreateProjectInput{
		Name:        name,
		Description: description,
	})
	if err != nil {
		fmt.Fprintf(w, "Error creating project: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Created project %s (%s)\n", p.Name, p.ID)
	return 0
}

func runProjectUpdate(ctx context.Context, w io.Writer, id string, cmd *cobra.Command) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var input tracker.UpdateProjectInput
	if cmd.Flags().Changed("name") {
		input.Name = &projectName
	}
	if cmd.Flags().Changed("description") {
		input.Description = &projectDescription
	}
	if cmd.Flags().Changed("status") {
		status := domain.ProjectStatus(projectStatus)
		input.Status = &status
	}
	if input.Name == nil && input.Description == nil && input.Status == nil {
		fmt.Fprintln(w, "Nothing to update: pass --name, --description, or --status.")
		return 1
	}

	p, err := a.tracker.UpdateProject(ctx, id, input)
	if err != nil {
		fmt.Fprintf(w, "Error updating project: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Updated project %s (status: %s)\n", p.Name, p.Status.Label())
	return 0
}

func runProjectDelete(ctx context.Context, w io.Writer, id string, skipConfirm bool) int {
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
			Title("Are you sure you want to delete this project?").
			Value(&confirmed)
		if err := prompt.Run(); err != nil || !confirmed {
			fmt.Fprintln(w, "Aborted.")
			return 1
		}
	}

	if err := a.tracker.DeleteProject(ctx, id); err != nil {
		fmt.Fprintf(w, "Error deleting project: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Deleted project %s\n", id)
	return 0
}
