// ABOUTME: Status and priority enumerations for projects and tasks
// ABOUTME: Membership checks only; any declared value is settable from any other

package domain

import "strings"

// ProjectStatus is the lifecycle state of a project. The server accepts any
// declared value on update; there is no transition graph.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// ProjectStatuses lists all project statuses in display order.
func ProjectStatuses() []ProjectStatus {
	return []ProjectStatus{
		ProjectPlanning,
		ProjectInProgress,
		ProjectOnHold,
		ProjectCompleted,
		ProjectCancelled,
	}
}

// Valid reports whether s is one of the declared project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// Label returns the human-readable form, e.g. "in_progress" -> "In Progress".
func (s ProjectStatus) Label() string {
	return statusLabel(string(s))
}

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskInReview   TaskStatus = "in_review"
	TaskDone       TaskStatus = "done"
)

// TaskStatuses lists all task statuses in board column order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskTodo, TaskInProgress, TaskInReview, TaskDone}
}

// Valid reports whether s is one of the declared task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskInReview, TaskDone:
		return true
	}
	return false
}

// Label returns the board column label for the status.
func (s TaskStatus) Label() string {
	if s == TaskTodo {
		return "To Do"
	}
	return statusLabel(string(s))
}

// TaskPriority is the urgency level of a task. The server defaults to
// medium when unset on create.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// TaskPriorities lists all priorities from least to most urgent.
func TaskPriorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Valid reports whether p is one of the declared priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Label returns the human-readable form of the priority.
func (p TaskPriority) Label() string {
	return statusLabel(string(p))
}

// statusLabel title-cases an underscore-separated enum value.
func statusLabel(v string) string {
	words := strings.Split(v, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
