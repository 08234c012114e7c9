// ABOUTME: Structured cache keys for tracker resources
// ABOUTME: Comparable values so equality is structural, never reference-based

package cache

// Key addresses one cached server-derived value: a kind tag plus an
// optional identifier. Keys are plain comparable values, so the same
// kind/id built at two call sites hits the same entry.
type Key struct {
	Kind string
	ID   string
}

// Projects is the key for the project list.
func Projects() Key {
	return Key{Kind: "projects"}
}

// Project is the key for a single project by id.
func Project(id string) Key {
	return Key{Kind: "project", ID: id}
}

// Tasks is the key for a project's task list.
func Tasks(projectID string) Key {
	return Key{Kind: "tasks", ID: projectID}
}

// String returns the canonical form used for de-duplication and logging.
func (k Key) String() string {
	if k.ID == "" {
		return k.Kind
	}
	return k.Kind + ":" + k.ID
}
