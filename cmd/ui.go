// ABOUTME: UI command launching the interactive project board
// ABOUTME: Session restoration runs inside the TUI so login never flashes

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reemkandil/askbob-project-mgmt/internal/api"
	"github.com/reemkandil/askbob-project-mgmt/internal/cache"
	"github.com/reemkandil/askbob-project-mgmt/internal/config"
	"github.com/reemkandil/askbob-project-mgmt/internal/logger"
	"github.com/reemkandil/askbob-project-mgmt/internal/session"
	"github.com/reemkandil/askbob-project-mgmt/internal/tracker"
	"github.com/reemkandil/askbob-project-mgmt/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive project board",
	Long:  `Launch the terminal UI: browse projects, move tasks between status columns, and manage your board interactively.`,
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runUI(); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI() int {
	// The TUI owns the terminal; send logs to a file instead.
	if logPath := os.Getenv("ASKBOB_LOG_FILE"); logPath != "" {
		closeLog, err := logger.InitFile(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer closeLog()
	}

	if _, err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	credPath, err := config.CredentialPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	client := api.New(GetAPIURL())
	sess := session.New(client, credPath)
	tr := tracker.New(client, cache.New())

	// Restore runs asynchronously inside the TUI's loading screen.
	if err := tui.Run(sess, tr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
