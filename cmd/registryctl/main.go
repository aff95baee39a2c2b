// Package main implements registryctl, a command-line tool for checking how
// registry CSV exports are parsed without running the API server.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "registryctl",
	Short: "Inspect registry CSV parsing offline",
	Long: `registryctl runs the registry importer locally.
It shows which layout a file is detected as, which records it yields, and how
individual values are classified and normalized.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(classifyCmd)
}
