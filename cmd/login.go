// ABOUTME: Login command exchanging credentials for a persisted session
// ABOUTME: Prompts for the password when not supplied via flag

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in to the tracker",
	Long:  `Authenticate against the tracker and persist the session credential for subsequent commands.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLogin(ctx, os.Stdout, args[0], loginPassword); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(ctx context.Context, w io.Writer, email, password string) int {
	if password == "" {
		prompt := huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password)
		if err := prompt.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}

	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	ident, err := a.session.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(w, "Login failed: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Logged in as %s (%s)\n", ident.FullName(), ident.Email)
	return 0
}
