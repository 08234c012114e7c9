// ABOUTME: Root command for the askbob CLI
// ABOUTME: Handles global flags and wires the session, cache, and tracker

package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/reemkandil/askbob-project-mgmt/internal/api"
	"github.com/reemkandil/askbob-project-mgmt/internal/cache"
	"github.com/reemkandil/askbob-project-mgmt/internal/config"
	"github.com/reemkandil/askbob-project-mgmt/internal/session"
	"github.com/reemkandil/askbob-project-mgmt/internal/tracker"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "askbob",
	Short: "Terminal client for AskBob Project Management",
	Long: `askbob is a terminal client for the AskBob project tracker.

Manage projects and tasks for your organization from the command line,
or run 'askbob ui' for the interactive board.

Environment Variables:
  ASKBOB_API_URL     Tracker API URL (default: http://localhost:8000)
  ASKBOB_CONFIG_DIR  Directory for the persisted credential`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Tracker API URL (overrides ASKBOB_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("ASKBOB_API_URL"); envURL != "" {
		return envURL
	}
	return config.DefaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// app bundles the client-side core: the API client, the session store,
// the resource cache, and the tracker that coordinates mutations.
type app struct {
	client  *api.Client
	cache   *cache.Cache
	session *session.Store
	tracker *tracker.Tracker
}

// newApp builds the core and restores any persisted session. Restoration
// always terminates; a rejected or unreachable credential simply leaves
// the session unauthenticated.
func newApp(ctx context.Context) (*app, error) {
	if _, err := config.Load(); err != nil {
		return nil, err
	}
	credPath, err := config.CredentialPath()
	if err != nil {
		return nil, err
	}

	client := api.New(GetAPIURL())
	sess := session.New(client, credPath)
	sess.Restore(ctx)
	c := cache.New()

	return &app{
		client:  client,
		cache:   c,
		session: sess,
		tracker: tracker.New(client, c),
	}, nil
}

// requireAuth returns an error unless the restored session is authenticated.
func (a *app) requireAuth() error {
	if !a.session.Authenticated() {
		return errors.New("not logged in; run 'askbob login' first")
	}
	return nil
}
