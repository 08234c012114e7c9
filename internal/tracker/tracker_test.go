// ABOUTME: Tests for the tracker read and mutation surface
// ABOUTME: Asserts exact cache invalidation per mutation using fake server request counts

package tracker

import (
	"context"
	"strings"
	"testing"

	"github.com/reemkandil/askbob-project-mgmt/internal/api"
	"github.com/reemkandil/askbob-project-mgmt/internal/cache"
	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
	"github.com/reemkandil/askbob-project-mgmt/internal/trackertest"
)

type fixture struct {
	server  *trackertest.Server
	tracker *Tracker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	server := trackertest.New()
	t.Cleanup(server.Close)

	client := api.New(server.URL)
	client.SetToken(server.SeedUser("alice@acme.test", "hunter22"))
	return &fixture{server: server, tracker: New(client, cache.New())}
}

// prime loads the project list, one project's detail, and its task list, so
// every cache entry exists before the mutation under test runs.
func (f *fixture) prime(t *testing.T, ctx context.Context, projectID string) {
	t.Helper()
	if _, err := f.tracker.Projects(ctx); err != nil {
		t.Fatalf("prime projects: %v", err)
	}
	if _, err := f.tracker.Project(ctx, projectID); err != nil {
		t.Fatalf("prime project: %v", err)
	}
	if _, err := f.tracker.Tasks(ctx, projectID); err != nil {
		t.Fatalf("prime tasks: %v", err)
	}
}

// reread repeats all three reads; cached entries produce no extra requests.
func (f *fixture) reread(t *testing.T, ctx context.Context, projectID string) {
	t.Helper()
	if _, err := f.tracker.Projects(ctx); err != nil {
		t.Fatalf("reread projects: %v", err)
	}
	if _, err := f.tracker.Project(ctx, projectID); err != nil {
		t.Fatalf("reread project: %v", err)
	}
	if _, err := f.tracker.Tasks(ctx, projectID); err != nil {
		t.Fatalf("reread tasks: %v", err)
	}
}

func TestReads_ServedFromCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.server.SeedProject("Launch")

	f.prime(t, ctx, p.ID)
	f.reread(t, ctx, p.ID)
	f.reread(t, ctx, p.ID)

	if got := f.server.Requests("GET", "/api/v1/projects"); got != 1 {
		t.Errorf("expected 1 project list fetch, got %d", got)
	}
	if got := f.server.Requests("GET", "/api/v1/projects/"+p.ID); got != 1 {
		t.Errorf("expected 1 project detail fetch, got %d", got)
	}
	if got := f.server.Requests("GET", "/api/v1/projects/"+p.ID+"/tasks"); got != 1 {
		t.Errorf("expected 1 task list fetch, got %d", got)
	}
}

func TestCreateProject_InvalidatesOnlyProjectList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.server.SeedProject("Launch")
	f.prime(t, ctx, p.ID)

	created, err := f.tracker.CreateProject(ctx, CreateProjectInput{Name: "Relaunch"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != "Relaunch" {
		t.Errorf("expected Relaunch, got %q", created.Name)
	}

	f.reread(t, ctx, p.ID)

	if got := f.server.Requests("GET", "/api/v1/projects"); got != 2 {
		t.Errorf("expected project list refetched, got %d fetches", got)
	}
	if got := f.server.Requests("GET", "/api/v1/projects/"+p.ID); got != 1 {
		t.Errorf("project detail must stay cached, got %d fetches", got)
	}
	if got := f.server.Requests("GET", "/api/v1/projects/"+p.ID+"/tasks"); got != 1 {
		t.Errorf("task list must stay cached, got %d fetches", got)
	}
}

func TestUpdateProject_InvalidatesOnlyDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.server.SeedProject("Launch")
	f.prime(t, ctx, p.ID)

	status := domain.ProjectCompleted
	updated, err := f.tracker.UpdateProject(ctx, p.ID, UpdateProjectInput{Status: &status})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.ProjectCompleted {
		t.Errorf("expected completed, got %q", updated.Status)
	}

	f.reread(t, ctx, p.ID)

	if got := f.server.Requests("GET", "/api/v1/projects/"+p.ID); got != 2 {
		t.Errorf("expected project detail refetched, got %d fetches", got)
	}
	if got := f.server.Requests("GET", "/api/v1/projects"); got != 1 {
		t.Errorf("project list must stay cached, got %d fetches", got)
	}
	if got := f.server.Requests("GET", "/api/v1/projects/"+p.ID+"/tasks"); got != 1 {
		t.Errorf("task list must stay cached, got %d fetches", got)
	}
}

func TestDeleteProject_InvalidatesProjectList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keep := f.server.SeedProject("Keep")
	doomed := f.server.SeedProject("Doomed")
	f.prime(t, ctx, keep.ID)

	if err := f.tracker.DeleteProject(ctx, doomed.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	projects, err := f.tracker.Projects(ctx)
	if err != nil {
		t.Fatalf("reread projects: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != keep.ID {
		t.Errorf("expected only the surviving project, got %v", projects)
	}
	if got := f.server.Requests("GET", "/api/v1/projects"); got != 2 {
		t.Errorf("expected project list refetched, got %d fetches", got)
	}
}

func TestTaskMutations_InvalidateOwningTaskList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.server.SeedProject("Launch")
	f.prime(t, ctx, p.ID)

	task, err := f.tracker.CreateTask(ctx, p.ID, CreateTaskInput{Title: "Write docs"})
	if err != nil {
		t.Fatalf("create task failed: %v", err)
	}

	tasks, err := f.tracker.Tasks(ctx, p.ID)
	if err != nil {
		t.Fatalf("reread tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Write docs" {
		t.Errorf("expected the created task, got %v", tasks)
	}

	status := domain.TaskInProgress
	if _, err := f.tracker.UpdateTask(ctx, p.ID, task.ID, UpdateTaskInput{Status: &status}); err != nil {
		t.Fatalf("update task failed: %v", err)
	}
	if _, err := f.tracker.Tasks(ctx, p.ID); err != nil {
		t.Fatalf("reread tasks: %v", err)
	}

	if err := f.tracker.DeleteTask(ctx, p.ID, task.ID); err != nil {
		t.Fatalf("delete task failed: %v", err)
	}
	if _, err := f.tracker.Tasks(ctx, p.ID); err != nil {
		t.Fatalf("reread tasks: %v", err)
	}

	// Three mutations, each followed by one refetch: 1 prime + 3 = 4.
	if got := f.server.Requests("GET", "/api/v1/projects/"+p.ID+"/tasks"); got != 4 {
		t.Errorf("expected 4 task list fetches, got %d", got)
	}
	// Task mutations never touch project entries.
	if got := f.server.Requests("GET", "/api/v1/projects"); got != 1 {
		t.Errorf("project list must stay cached, got %d fetches", got)
	}
	if got := f.server.Requests("GET", "/api/v1/projects/"+p.ID); got != 1 {
		t.Errorf("project detail must stay cached, got %d fetches", got)
	}
}

func TestFailedMutation_LeavesCacheIntact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.server.SeedProject("Launch")
	f.prime(t, ctx, p.ID)

	if _, err := f.tracker.Project(ctx, "proj-missing"); err == nil {
		t.Fatal("expected error for unknown project")
	}
	if err := f.tracker.DeleteProject(ctx, "proj-missing"); err == nil {
		t.Fatal("expected error for unknown project")
	}

	f.reread(t, ctx, p.ID)

	if got := f.server.Requests("GET", "/api/v1/projects"); got != 1 {
		t.Errorf("failed delete must not invalidate, got %d list fetches", got)
	}
}

func TestCreateProject_ValidationBeforeNetwork(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.tracker.CreateProject(ctx, CreateProjectInput{Name: ""}); err == nil {
		t.Fatal("expected error for empty name")
	}
	long := strings.Repeat("x", 201)
	if _, err := f.tracker.CreateProject(ctx, CreateProjectInput{Name: long}); err == nil {
		t.Fatal("expected error for overlong name")
	}
	if got := f.server.Requests("POST", "/api/v1/projects"); got != 0 {
		t.Errorf("validation must run before any network call, saw %d requests", got)
	}
}

func TestUpdateTask_RejectsInvalidStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.server.SeedProject("Launch")
	task := f.server.SeedTask(p.ID, "Write docs")

	bad := domain.TaskStatus("archived")
	if _, err := f.tracker.UpdateTask(ctx, p.ID, task.ID, UpdateTaskInput{Status: &bad}); err == nil {
		t.Fatal("expected error for undeclared status")
	}
	if got := f.server.Requests("PUT", "/api/v1/tasks/"+task.ID); got != 0 {
		t.Errorf("invalid status must not reach the server, saw %d requests", got)
	}
}

func TestNormalizeDueDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01", "2024-01-01T00:00:00Z"},
		{"2024-01-01T15:04:05Z", "2024-01-01T15:04:05Z"},
		{"", ""},
		{"not-a-date", "not-a-date"},
	}
	for _, tt := range tests {
		if got := NormalizeDueDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDueDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreateTask_NormalizesDueDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.server.SeedProject("Launch")

	task, err := f.tracker.CreateTask(ctx, p.ID, CreateTaskInput{
		Title:   "Ship it",
		DueDate: "2024-06-30",
	})
	if err != nil {
		t.Fatalf("create task failed: %v", err)
	}
	if task.DueDate != "2024-06-30T00:00:00Z" {
		t.Errorf("expected normalized due date, got %q", task.DueDate)
	}
}
