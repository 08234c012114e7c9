// ABOUTME: Tests for the task board screen
// ABOUTME: Column grouping, navigation bounds, and emitted mutation messages

package board

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
)

func testProject() *domain.Project {
	return &domain.Project{ID: "proj-1", Name: "Launch", Status: domain.ProjectPlanning}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSetTasks_GroupsByColumnOrder(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Status: domain.TaskDone},
		{ID: "t2", Status: domain.TaskTodo},
		{ID: "t3", Status: domain.TaskInProgress},
		{ID: "t4", Status: domain.TaskTodo},
	}
	b := New(testProject(), tasks, 120)

	if len(b.columns) != len(domain.TaskStatuses()) {
		t.Fatalf("expected %d columns, got %d", len(domain.TaskStatuses()), len(b.columns))
	}
	if len(b.columns[0]) != 2 {
		t.Errorf("expected 2 todo tasks, got %d", len(b.columns[0]))
	}
	if len(b.columns[1]) != 1 || b.columns[1][0].ID != "t3" {
		t.Errorf("expected t3 in the in-progress column, got %v", b.columns[1])
	}
	if len(b.columns[2]) != 0 {
		t.Errorf("expected empty in-review column, got %v", b.columns[2])
	}
	if len(b.columns[3]) != 1 || b.columns[3][0].ID != "t1" {
		t.Errorf("expected t1 in the done column, got %v", b.columns[3])
	}
}

func TestSetTasks_ClampsSelection(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Status: domain.TaskTodo},
		{ID: "t2", Status: domain.TaskTodo},
	}
	b := New(testProject(), tasks, 120)
	b.Update(key("j"))
	if b.row != 1 {
		t.Fatalf("expected row 1, got %d", b.row)
	}

	// The selected task disappeared; selection must stay in range.
	b.SetTasks([]domain.Task{{ID: "t1", Status: domain.TaskTodo}})
	if b.row != 0 {
		t.Errorf("expected row clamped to 0, got %d", b.row)
	}
}

func TestMoveTask_EmitsNextColumnStatus(t *testing.T) {
	tasks := []domain.Task{{ID: "t1", Status: domain.TaskTodo}}
	b := New(testProject(), tasks, 120)

	_, cmd := b.Update(key("s"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(SetTaskStatusMsg)
	if !ok {
		t.Fatalf("expected SetTaskStatusMsg, got %T", cmd())
	}
	if msg.TaskID != "t1" || msg.Status != domain.TaskInProgress {
		t.Errorf("expected t1 -> in_progress, got %+v", msg)
	}
}

func TestMoveTask_WrapsFromLastColumn(t *testing.T) {
	tasks := []domain.Task{{ID: "t1", Status: domain.TaskDone}}
	b := New(testProject(), tasks, 120)
	for i := 0; i < 3; i++ {
		b.Update(key("l"))
	}

	_, cmd := b.Update(key("s"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd().(SetTaskStatusMsg)
	if msg.Status != domain.TaskTodo {
		t.Errorf("expected wrap to todo, got %q", msg.Status)
	}
}

func TestCycleProjectStatus(t *testing.T) {
	b := New(testProject(), nil, 120)

	_, cmd := b.Update(key("S"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(SetProjectStatusMsg)
	if !ok {
		t.Fatalf("expected SetProjectStatusMsg, got %T", cmd())
	}
	if msg.Status != domain.ProjectInProgress {
		t.Errorf("expected planning -> in_progress, got %q", msg.Status)
	}
}

func TestDeleteTask_RequiresConfirmation(t *testing.T) {
	tasks := []domain.Task{{ID: "t1", Status: domain.TaskTodo}}
	b := New(testProject(), tasks, 120)

	_, cmd := b.Update(key("d"))
	if cmd != nil {
		t.Fatal("delete must wait for confirmation")
	}

	// Any key but y aborts.
	_, cmd = b.Update(key("n"))
	if cmd != nil {
		t.Fatal("expected abort on non-confirming key")
	}

	b.Update(key("d"))
	_, cmd = b.Update(key("y"))
	if cmd == nil {
		t.Fatal("expected delete command after confirmation")
	}
	msg := cmd().(DeleteTaskMsg)
	if msg.TaskID != "t1" || msg.ProjectID != "proj-1" {
		t.Errorf("unexpected delete target: %+v", msg)
	}
}

func TestBack_EmitsBackMsg(t *testing.T) {
	b := New(testProject(), nil, 120)

	_, cmd := b.Update(key("b"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Errorf("expected BackMsg, got %T", cmd())
	}
}
