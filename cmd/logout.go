// ABOUTME: Logout command clearing the session and persisted credential
// ABOUTME: Idempotent; never calls the server

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/reemkandil/askbob-project-mgmt/internal/config"
	"github.com/reemkandil/askbob-project-mgmt/internal/session"

	"github.com/reemkandil/askbob-project-mgmt/internal/api"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the persisted credential",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runLogout(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears local state only. No session restore and no network
// call happens here; logout must succeed even when the tracker is down.
func runLogout(w io.Writer) int {
	credPath, err := config.CredentialPath()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	sess := session.New(api.New(GetAPIURL()), credPath)
	sess.Logout()

	fmt.Fprintln(w, "Logged out.")
	return 0
}
