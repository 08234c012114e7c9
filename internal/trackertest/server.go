// ABOUTME: In-memory fake of the AskBob tracker API for tests
// ABOUTME: Implements the auth, project, and task endpoints over httptest

package trackertest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
)

// Server is a fake tracker backend. It keeps users, projects, and tasks in
// memory, issues opaque bearer tokens, and counts requests per route so
// tests can assert exact call behavior.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]user           // email -> account
	tokens   map[string]string         // token -> email
	projects map[string]domain.Project // id -> project
	tasks    map[string]domain.Task    // id -> task
	nextID   int
	requests map[string]int // "GET /projects" -> count
	lastAuth string
}

type user struct {
	password string
	identity domain.Identity
}

// New starts a fake tracker. Callers must Close it.
func New() *Server {
	s := &Server{
		users:    make(map[string]user),
		tokens:   make(map[string]string),
		projects: make(map[string]domain.Project),
		tasks:    make(map[string]domain.Task),
		requests: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("GET /api/v1/auth/me", s.handleMe)
	mux.HandleFunc("GET /api/v1/projects", s.handleListProjects)
	mux.HandleFunc("POST /api/v1/projects", s.handleCreateProject)
	mux.HandleFunc("GET /api/v1/projects/{id}", s.handleGetProject)
	mux.HandleFunc("PUT /api/v1/projects/{id}", s.handleUpdateProject)
	mux.HandleFunc("DELETE /api/v1/projects/{id}", s.handleDeleteProject)
	mux.HandleFunc("GET /api/v1/projects/{id}/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/v1/projects/{id}/tasks", s.handleCreateTask)
	mux.HandleFunc("PUT /api/v1/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /api/v1/tasks/{id}", s.handleDeleteTask)

	s.Server = httptest.NewServer(s.count(mux))
	return s
}

// SeedUser registers an account directly and returns a valid token for it.
func (s *Server) SeedUser(email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id("user")
	s.users[email] = user{
		password: password,
		identity: domain.Identity{
			ID:        id,
			Email:     email,
			FirstName: "Test",
			LastName:  "User",
			TenantID:  s.id("tenant"),
			IsActive:  true,
		},
	}
	return s.issueToken(email)
}

// SeedProject inserts a project directly and returns it.
func (s *Server) SeedProject(name string) domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.Project{
		ID:        s.id("proj"),
		Name:      name,
		Status:    domain.ProjectPlanning,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.projects[p.ID] = p
	return p
}

// SeedTask inserts a task directly and returns it.
func (s *Server) SeedTask(projectID, title string) domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := domain.Task{
		ID:        s.id("task"),
		ProjectID: projectID,
		Title:     title,
		Status:    domain.TaskTodo,
		Priority:  domain.PriorityMedium,
	}
	s.tasks[t.ID] = t
	return t
}

// ExpireToken invalidates a previously issued token, simulating expiry.
func (s *Server) ExpireToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// Requests returns how many calls hit the given method and path,
// e.g. Requests("GET", "/api/v1/projects").
func (s *Server) Requests(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[method+" "+path]
}

// LastAuthHeader returns the Authorization header seen on the most recent
// request, empty when the request carried none.
func (s *Server) LastAuthHeader() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.Method+" "+r.URL.Path]++
		s.lastAuth = r.Header.Get("Authorization")
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *Server) issueToken(email string) string {
	s.nextID++
	token := fmt.Sprintf("token-%d-%s", s.nextID, email)
	s.tokens[token] = email
	return token
}

// authenticate resolves the bearer token to an identity. Writes a 401 and
// returns false when the credential is missing or rejected.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return domain.Identity{}, false
	}

	s.mu.Lock()
	email, ok := s.tokens[token]
	var ident domain.Identity
	if ok {
		ident = s.users[email].identity
	}
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Invalid authentication credentials")
		return domain.Identity{}, false
	}
	return ident, true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Email]
	var token string
	if ok && u.password == req.Password {
		token = s.issueToken(req.Email)
	}
	s.mu.Unlock()

	if token == "" {
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		TenantName   string `json:"tenant_name"`
		TenantDomain string `json:"tenant_domain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Email]; exists {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	s.users[req.Email] = user{
		password: req.Password,
		identity: domain.Identity{
			ID:        s.id("user"),
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			TenantID:  s.id("tenant"),
			IsActive:  true,
		},
	}
	token := s.issueToken(req.Email)
	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ident)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	s.mu.Lock()
	list := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		list = append(list, p)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "Project name is required")
		return
	}

	s.mu.Lock()
	p := domain.Project{
		ID:          s.id("proj"),
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectPlanning,
		TenantID:    ident.TenantID,
		CreatedBy:   ident.ID,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	s.projects[p.ID] = p
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	s.mu.Lock()
	p, ok := s.projects[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	var req struct {
		Name        *string               `json:"name"`
		Description *string               `json:"description"`
		Status      *domain.ProjectStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid project status")
		return
	}

	s.mu.Lock()
	p, ok := s.projects[r.PathValue("id")]
	if ok {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Status != nil {
			p.Status = *req.Status
		}
		p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		s.projects[p.ID] = p
	}
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	s.mu.Lock()
	_, ok := s.projects[r.PathValue("id")]
	delete(s.projects, r.PathValue("id"))
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Project not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	projectID := r.PathValue("id")
	s.mu.Lock()
	list := make([]domain.Task, 0)
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			list = append(list, t)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	projectID := r.PathValue("id")
	var req struct {
		Title       string              `json:"title"`
		Description string              `json:"description"`
		Priority    domain.TaskPriority `json:"priority"`
		DueDate     string              `json:"due_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "Task title is required")
		return
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityMedium
	}

	s.mu.Lock()
	t := domain.Task{
		ID:          s.id("task"),
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskTodo,
		Priority:    req.Priority,
		CreatedBy:   ident.ID,
		DueDate:     req.DueDate,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	s.tasks[t.ID] = t
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	var req struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Status      *domain.TaskStatus   `json:"status"`
		Priority    *domain.TaskPriority `json:"priority"`
		DueDate     *string              `json:"due_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid task status")
		return
	}

	s.mu.Lock()
	t, ok := s.tasks[r.PathValue("id")]
	if ok {
		if req.Title != nil {
			t.Title = *req.Title
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.Status != nil {
			t.Status = *req.Status
		}
		if req.Priority != nil {
			t.Priority = *req.Priority
		}
		if req.DueDate != nil {
			t.DueDate = *req.DueDate
		}
		t.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		s.tasks[t.ID] = t
	}
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	s.mu.Lock()
	_, ok := s.tasks[r.PathValue("id")]
	delete(s.tasks, r.PathValue("id"))
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
