// ABOUTME: Session store owning the credential and authenticated identity
// ABOUTME: Handles login, registration, logout, and startup restoration

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/reemkandil/askbob-project-mgmt/internal/api"
	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
)

// Store owns the current credential and identity. The credential is
// persisted across runs; the identity is re-fetched every time. A session
// counts as authenticated only while an identity is held — a token without
// a verifiable identity is unauthenticated.
type Store struct {
	client   *api.Client
	credPath string

	mu       sync.RWMutex
	identity *domain.Identity
	loading  bool
}

// RegisterInput carries the registration form fields. TenantDomain, when
// empty, is derived from TenantName.
type RegisterInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	TenantName   string `json:"tenant_name"`
	TenantDomain string `json:"tenant_domain"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// New creates a session store bound to the API client and credential file.
// The store starts in the loading state; call Restore to resolve it.
func New(client *api.Client, credPath string) *Store {
	return &Store{
		client:   client,
		credPath: credPath,
		loading:  true,
	}
}

// Restore attaches a previously persisted credential and verifies it
// against /auth/me. Any failure (rejected token, unreachable server)
// demotes to unauthenticated without surfacing an error. Restore always
// terminates and always ends the loading state.
func (s *Store) Restore(ctx context.Context) {
	defer s.setLoading(false)

	token, err := loadToken(s.credPath)
	if err != nil {
		slog.Warn("Failed to read persisted credential", "error", err)
		return
	}
	if token == "" {
		return
	}

	s.client.SetToken(token)

	var ident domain.Identity
	if err := s.client.GetJSON(ctx, "/auth/me", &ident); err != nil {
		slog.Info("Session restore failed, clearing credential", "error", err)
		s.clearCredential()
		return
	}

	s.setIdentity(&ident)
	slog.Debug("Session restored", "email", ident.Email)
}

// Login exchanges credentials for a token, persists it, and fetches the
// identity. On failure the prior session state is untouched and the error
// carries the server-reported reason when one was given.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	body := map[string]string{"email": email, "password": password}

	var tok tokenResponse
	if err := s.client.PostJSON(ctx, "/auth/login", body, &tok); err != nil {
		return nil, authError(err, "login failed")
	}

	return s.establish(ctx, tok.AccessToken)
}

// Register creates an account and tenant, then establishes a session the
// same way Login does. Form-level validation runs before any network call.
func (s *Store) Register(ctx context.Context, input RegisterInput) (*domain.Identity, error) {
	if len(input.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters long")
	}
	if input.TenantDomain == "" {
		input.TenantDomain = domain.DeriveTenantDomain(input.TenantName)
	}
	if !domain.ValidTenantDomain(input.TenantDomain) {
		return nil, errors.New("organization domain is required (lowercase letters, numbers, and hyphens)")
	}

	var tok tokenResponse
	if err := s.client.PostJSON(ctx, "/auth/register", input, &tok); err != nil {
		return nil, authError(err, "registration failed")
	}

	return s.establish(ctx, tok.AccessToken)
}

// establish installs the new credential on the API client before any
// further request goes out, persists it, and fetches the identity. A token
// that cannot be verified is discarded rather than kept.
func (s *Store) establish(ctx context.Context, token string) (*domain.Identity, error) {
	s.client.SetToken(token)
	if err := saveToken(s.credPath, token); err != nil {
		slog.Warn("Failed to persist credential", "error", err)
	}

	var ident domain.Identity
	if err := s.client.GetJSON(ctx, "/auth/me", &ident); err != nil {
		s.clearCredential()
		return nil, authError(err, "failed to fetch user profile")
	}

	s.setIdentity(&ident)
	return &ident, nil
}

// Logout clears the credential, identity, and persisted storage. It is
// idempotent and never calls the server.
func (s *Store) Logout() {
	s.setIdentity(nil)
	s.clearCredential()
	slog.Debug("Session cleared")
}

// Identity returns the authenticated user, or nil.
func (s *Store) Identity() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Authenticated reports whether an identity is currently held.
func (s *Store) Authenticated() bool {
	return s.Identity() != nil
}

// Loading reports whether restoration is still in progress.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setIdentity(ident *domain.Identity) {
	s.mu.Lock()
	s.identity = ident
	s.mu.Unlock()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) clearCredential() {
	s.client.ClearToken()
	if err := deleteToken(s.credPath); err != nil {
		slog.Warn("Failed to remove persisted credential", "error", err)
	}
}

// authError keeps the most specific server detail available, falling back
// to a generic message for transport failures.
func authError(err error, fallback string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr
		}
		if apiErr.Status == http.StatusUnauthorized {
			return fmt.Errorf("%s: invalid credentials", fallback)
		}
		return fmt.Errorf("%s: %w", fallback, apiErr)
	}
	return fmt.Errorf("%s: %w", fallback, err)
}
