// ABOUTME: Typed read and mutation surface over the tracker API
// ABOUTME: Reads go through the cache; each mutation invalidates a fixed key set

package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/reemkandil/askbob-project-mgmt/internal/api"
	"github.com/reemkandil/askbob-project-mgmt/internal/cache"
	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
)

// Tracker serves reads from the resource cache and coordinates mutations:
// exactly one API call per operation, and on success it invalidates the
// cache keys whose server-side truth may have changed. Failures invalidate
// nothing and leave cached values intact; there is no optimistic mutation.
type Tracker struct {
	client *api.Client
	cache  *cache.Cache
}

// New creates a tracker over the given API client and cache.
func New(client *api.Client, c *cache.Cache) *Tracker {
	return &Tracker{client: client, cache: c}
}

// Projects returns the project list, cached under the projects key.
func (t *Tracker) Projects(ctx context.Context) ([]domain.Project, error) {
	val, err := t.cache.Get(ctx, cache.Projects(), func(ctx context.Context) (any, error) {
		var projects []domain.Project
		if err := t.client.GetJSON(ctx, "/projects", &projects); err != nil {
			return nil, err
		}
		return projects, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]domain.Project), nil
}

// Project returns a single project by id.
func (t *Tracker) Project(ctx context.Context, id string) (*domain.Project, error) {
	val, err := t.cache.Get(ctx, cache.Project(id), func(ctx context.Context) (any, error) {
		var project domain.Project
		if err := t.client.GetJSON(ctx, "/projects/"+id, &project); err != nil {
			return nil, err
		}
		return &project, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*domain.Project), nil
}

// Tasks returns a project's tasks.
func (t *Tracker) Tasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	val, err := t.cache.Get(ctx, cache.Tasks(projectID), func(ctx context.Context) (any, error) {
		var tasks []domain.Task
		if err := t.client.GetJSON(ctx, "/projects/"+projectID+"/tasks", &tasks); err != nil {
			return nil, err
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]domain.Task), nil
}

// CreateProjectInput is the POST /projects payload.
type CreateProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateProjectInput is the PUT /projects/{id} payload. Nil fields are
// omitted, so partial updates leave the rest of the project untouched.
type UpdateProjectInput struct {
	Name        *string               `json:"name,omitempty"`
	Description *string               `json:"description,omitempty"`
	Status      *domain.ProjectStatus `json:"status,omitempty"`
}

// CreateProject creates a project and invalidates the project list.
func (t *Tracker) CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	if err := validateName(input.Name, "project name"); err != nil {
		return nil, err
	}

	var project domain.Project
	if err := t.client.PostJSON(ctx, "/projects", input, &project); err != nil {
		return nil, err
	}
	t.cache.Invalidate(cache.Projects())
	slog.Debug("Project created", "id", project.ID)
	return &project, nil
}

// UpdateProject updates a project and invalidates its detail entry. Status
// values must be members of the declared enum; no transition graph is
// enforced, any declared status is settable from any other.
func (t *Tracker) UpdateProject(ctx context.Context, id string, input UpdateProjectInput) (*domain.Project, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, fmt.Errorf("invalid project status %q", *input.Status)
	}

	var project domain.Project
	if err := t.client.PutJSON(ctx, "/projects/"+id, input, &project); err != nil {
		return nil, err
	}
	t.cache.Invalidate(cache.Project(id))
	return &project, nil
}

// DeleteProject deletes a project and invalidates the project list.
func (t *Tracker) DeleteProject(ctx context.Context, id string) error {
	if err := t.client.Delete(ctx, "/projects/"+id); err != nil {
		return err
	}
	t.cache.Invalidate(cache.Projects())
	slog.Debug("Project deleted", "id", id)
	return nil
}

// CreateTaskInput is the POST /projects/{id}/tasks payload. An empty
// priority lets the server apply its default. DueDate accepts a bare
// YYYY-MM-DD date and is normalized to a full timestamp before
// transmission.
type CreateTaskInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Priority    domain.TaskPriority `json:"priority,omitempty"`
	DueDate     string              `json:"due_date,omitempty"`
}

// UpdateTaskInput is the PUT /tasks/{id} payload.
type UpdateTaskInput struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Status      *domain.TaskStatus   `json:"status,omitempty"`
	Priority    *domain.TaskPriority `json:"priority,omitempty"`
	DueDate     *string              `json:"due_date,omitempty"`
}

// CreateTask creates a task under a project and invalidates that project's
// task list.
func (t *Tracker) CreateTask(ctx context.Context, projectID string, input CreateTaskInput) (*domain.Task, error) {
	if err := validateName(input.Title, "task title"); err != nil {
		return nil, err
	}
	if input.Priority != "" && !input.Priority.Valid() {
		return nil, fmt.Errorf("invalid task priority %q", input.Priority)
	}
	if input.DueDate != "" {
		input.DueDate = NormalizeDueDate(input.DueDate)
	}

	var task domain.Task
	if err := t.client.PostJSON(ctx, "/projects/"+projectID+"/tasks", input, &task); err != nil {
		return nil, err
	}
	t.cache.Invalidate(cache.Tasks(projectID))
	slog.Debug("Task created", "id", task.ID, "project", projectID)
	return &task, nil
}

// UpdateTask updates a task and invalidates the owning project's task
// list. projectID is the task's owning project.
func (t *Tracker) UpdateTask(ctx context.Context, projectID, id string, input UpdateTaskInput) (*domain.Task, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, fmt.Errorf("invalid task status %q", *input.Status)
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, fmt.Errorf("invalid task priority %q", *input.Priority)
	}

	var task domain.Task
	if err := t.client.PutJSON(ctx, "/tasks/"+id, input, &task); err != nil {
		return nil, err
	}
	t.cache.Invalidate(cache.Tasks(projectID))
	return &task, nil
}

// DeleteTask deletes a task and invalidates the owning project's task list.
func (t *Tracker) DeleteTask(ctx context.Context, projectID, id string) error {
	if err := t.client.Delete(ctx, "/tasks/"+id); err != nil {
		return err
	}
	t.cache.Invalidate(cache.Tasks(projectID))
	slog.Debug("Task deleted", "id", id, "project", projectID)
	return nil
}

// NormalizeDueDate converts a bare YYYY-MM-DD date to a UTC midnight
// timestamp. Values already carrying a time component pass through
// verbatim.
func NormalizeDueDate(d string) string {
	parsed, err := time.Parse("2006-01-02", d)
	if err != nil {
		return d
	}
	return parsed.UTC().Format(time.RFC3339)
}

func validateName(v, what string) error {
	if v == "" {
		return fmt.Errorf("%s is required", what)
	}
	if len(v) > 200 {
		return fmt.Errorf("%s must be less than 200 characters", what)
	}
	return nil
}
