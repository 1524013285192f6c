package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "signin",
	Short:         "Sign in with email and password against a configurable identity backend.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var envFile string

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(loginCmd, providersCmd)
}
