package main

import (
	"os"

	"github.com/spf13/cobra"

	"courtside/internal/interfaces/cli/migrate"
	"courtside/internal/interfaces/cli/server"
	"courtside/internal/interfaces/cli/sweep"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "courtside",
		Short: "Courtside - content entitlement service",
		Long:  `Courtside resolves viewer access to coaching content: grants, redemption codes, bans, device tracking, and the content tree served to the storefront.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sweep.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
