package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/b33n-tech/scrapper-persee/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("Version:    %s\n", version.Version())
		fmt.Printf("Commit:     %s\n", version.Commit())
		fmt.Printf("Built:      %s\n", version.BuildTime())
	},
}
