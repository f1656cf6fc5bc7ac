// Package cmd provides the persee-harvest CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/b33n-tech/scrapper-persee/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "persee-harvest",
	Short: "Harvest bibliographic metadata from the Persée OAI-PMH repository",
	Long: `persee-harvest walks the Persée OAI-PMH repository, normalizes the
Dublin Core metadata of every matching record into a flat schema and
exports the result as CSV (UTF-8 BOM, spreadsheet-ready) and JSON.

Typical use:
  persee-harvest sets --filter ephe
  persee-harvest harvest --filter ephe
  persee-harvest harvest --filter ephe --set persee:serie-ephe --max 100

Environment configuration is read from PERSEE_* variables and an
optional .env file.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(config.Init)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(harvestCmd)
	rootCmd.AddCommand(versionCmd)
}
