// ABOUTME: Register command creating an account and its organization
// ABOUTME: Derives the tenant domain from the organization name unless overridden

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reemkandil/askbob-project-mgmt/internal/domain"
	"github.com/reemkandil/askbob-project-mgmt/internal/session"
)

var registerInput session.RegisterInput

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and organization",
	Long: `Register a new user and organization with the tracker.

The organization domain is derived from the organization name (lowercase,
hyphens for spaces) unless --tenant-domain overrides it.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runRegister(ctx, os.Stdout, registerInput); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerInput.Email, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerInput.Password, "password", "", "Password (at least 6 characters)")
	registerCmd.Flags().StringVar(&registerInput.FirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerInput.LastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&registerInput.TenantName, "tenant-name", "", "Organization name")
	registerCmd.Flags().StringVar(&registerInput.TenantDomain, "tenant-domain", "", "Organization domain (derived from name when omitted)")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("first-name")
	registerCmd.MarkFlagRequired("last-name")
	registerCmd.MarkFlagRequired("tenant-name")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(ctx context.Context, w io.Writer, input session.RegisterInput) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if input.TenantDomain == "" {
		input.TenantDomain = domain.DeriveTenantDomain(input.TenantName)
	}

	ident, err := a.session.Register(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Registration failed: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Registered %s under organization %q (domain %s)\n",
		ident.Email, input.TenantName, input.TenantDomain)
	return 0
}
