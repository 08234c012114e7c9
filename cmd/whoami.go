// ABOUTME: Whoami command showing the authenticated identity
// ABOUTME: Verifies the persisted credential against the tracker

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runWhoami(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	ident := a.session.Identity()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(ident, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s <%s>\nTenant: %s\n", ident.FullName(), ident.Email, ident.TenantID)
	return 0
}
