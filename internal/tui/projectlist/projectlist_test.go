// ABOUTME: Tests for the project list screen
// ABOUTME: Cursor bounds, open and delete messages, and empty-state rendering

package projectlist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testProjects() []domain.Project {
	return []domain.Project{
		{ID: "p1", Name: "Launch", Status: domain.ProjectPlanning},
		{ID: "p2", Name: "Migration", Status: domain.ProjectInProgress},
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	l := New(testProjects())

	l.Update(key("k"))
	if l.cursor != 0 {
		t.Errorf("cursor must not move above the first project, got %d", l.cursor)
	}

	l.Update(key("j"))
	l.Update(key("j"))
	if l.cursor != 1 {
		t.Errorf("cursor must not move past the last project, got %d", l.cursor)
	}
}

func TestEnter_OpensCursoredProject(t *testing.T) {
	l := New(testProjects())
	l.Update(key("j"))

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(OpenMsg)
	if !ok {
		t.Fatalf("expected OpenMsg, got %T", cmd())
	}
	if msg.ID != "p2" {
		t.Errorf("expected p2, got %q", msg.ID)
	}
}

func TestEnter_EmptyListIsNoop(t *testing.T) {
	l := New(nil)
	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter on an empty list must do nothing")
	}
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	l := New(testProjects())

	_, cmd := l.Update(key("d"))
	if cmd != nil {
		t.Fatal("delete must wait for confirmation")
	}

	_, cmd = l.Update(key("q"))
	if cmd != nil {
		t.Fatal("non-confirming key must abort, not quit")
	}

	l.Update(key("d"))
	_, cmd = l.Update(key("y"))
	if cmd == nil {
		t.Fatal("expected delete command after confirmation")
	}
	msg := cmd().(DeleteMsg)
	if msg.ID != "p1" {
		t.Errorf("expected p1, got %q", msg.ID)
	}
}

func TestSetProjects_ClampsCursor(t *testing.T) {
	l := New(testProjects())
	l.Update(key("j"))

	l.SetProjects(testProjects()[:1])
	if l.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", l.cursor)
	}

	l.SetProjects(nil)
	if l.cursor != 0 {
		t.Errorf("expected cursor 0 for empty list, got %d", l.cursor)
	}
}

func TestView_EmptyState(t *testing.T) {
	l := New(nil)
	if !strings.Contains(l.View(), "No projects yet") {
		t.Error("expected empty-state hint in view")
	}
}

func TestView_ShowsInlineError(t *testing.T) {
	l := New(testProjects())
	l.SetError("cannot reach tracker")
	if !strings.Contains(l.View(), "cannot reach tracker") {
		t.Error("expected inline error in view")
	}
}
