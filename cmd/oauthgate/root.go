package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

// newRootCmd builds the command tree. environ is read after the env file is loaded.
func newRootCmd(environ func() []string) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "oauthgate",
		Short:        "OAuth callback service for static sites",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnvFile(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file loaded before reading the environment")

	root.AddCommand(
		newServeCmd(environ),
		newProvidersCmd(environ),
	)
	return root
}

// loadEnvFile loads a dotenv file. A missing default file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if path == defaultEnvFile && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}
