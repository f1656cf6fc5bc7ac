package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/b33n-tech/scrapper-persee/internal/harvester"
	"github.com/b33n-tech/scrapper-persee/pkg/config"
	"github.com/b33n-tech/scrapper-persee/pkg/logger"
)

var setsFilter string

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List repository sets matching a filter",
	Long: `Walks the repository's ListSets pages and prints every set whose id
or name contains the filter, case-insensitively.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cfg, err := config.Load()
		if err != nil {
			logger.Fatal("Error loading configuration: %v", err)
		}
		logger.Initialize(cfg.LogLevel)
		defer logger.Sync()

		svc := harvester.NewService(cfg)
		sets, err := svc.DiscoverSets(context.Background(), setsFilter)
		if err != nil {
			logger.Fatal("Error discovering sets: %v", err)
		}

		for _, s := range sets {
			fmt.Printf("%s\t%s\n", s.Spec, s.Name)
		}
	},
}

func init() {
	setsCmd.Flags().StringVarP(&setsFilter, "filter", "f", "", "substring matched against set ids and names")
}
