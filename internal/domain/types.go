// ABOUTME: Resource types mirrored from the AskBob tracker API
// ABOUTME: Field shapes match the server's JSON responses exactly

package domain

// Identity is the authenticated user's profile as returned by /auth/me.
// It is fetched, never mutated locally; a refresh is always a re-fetch.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	TenantID  string `json:"tenant_id"`
	IsActive  bool   `json:"is_active"`
}

// FullName returns the display name for the identity.
func (i Identity) FullName() string {
	return i.FirstName + " " + i.LastName
}

// Project is a server-owned project; the client holds read-through copies.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	TenantID    string        `json:"tenant_id,omitempty"`
	CreatedBy   string        `json:"created_by,omitempty"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at,omitempty"`
}

// Task is a server-owned task within a project.
type Task struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"project_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AssignedTo  string       `json:"assigned_to,omitempty"`
	CreatedBy   string       `json:"created_by,omitempty"`
	DueDate     string       `json:"due_date,omitempty"`
	CreatedAt   string       `json:"created_at,omitempty"`
	UpdatedAt   string       `json:"updated_at,omitempty"`
}
