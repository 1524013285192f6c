package main

import (
	"fmt"

	"github.com/jrsteele09/go-signin/internal/bootstrap"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the identity backends AUTH_PROVIDER accepts.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, name := range bootstrap.SupportedProviders() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
