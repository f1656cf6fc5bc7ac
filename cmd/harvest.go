package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/b33n-tech/scrapper-persee/internal"
	"github.com/b33n-tech/scrapper-persee/pkg/config"
	"github.com/b33n-tech/scrapper-persee/pkg/logger"
)

var (
	harvestFilter string
	harvestSets   []string
	harvestMax    int
	harvestDelay  time.Duration
	serve         bool
	addr          string
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Run the full harvest pipeline and export CSV/JSON",
	Long: `Discovers the sets matching the filter, collects every non-deleted
record identifier, deduplicates them (first occurrence wins), fetches
and normalizes each record's Dublin Core metadata, and writes the
results as CSV and JSON into the output directory.

With --serve the same pipeline is exposed on POST /harvest instead and
the records are returned as JSON.`,
	Run: func(cmd *cobra.Command, _ []string) {
		// Flags override the environment.
		if cmd.Flags().Changed("max") {
			viper.Set("max_records", harvestMax)
		}
		if cmd.Flags().Changed("delay") {
			viper.Set("delay", harvestDelay)
		}

		cfg, err := config.Load()
		if err != nil {
			logger.Fatal("Error loading configuration: %v", err)
		}
		logger.Initialize(cfg.LogLevel)
		defer logger.Sync()

		startTime := time.Now()
		defer func() {
			logger.Debug("Execution time: %vs", time.Since(startTime).Seconds())
		}()

		svc := internal.NewService(cfg)

		if serve {
			if err := internal.Serve(svc, addr); err != nil {
				logger.Fatal("Error starting HTTP server: %v", err)
			}
			return
		}

		args := internal.Args{
			Filter: harvestFilter,
			Sets:   harvestSets,
			Export: true,
		}
		if _, err := svc.Run(context.Background(), args); err != nil {
			logger.Fatal("Error running harvest: %v", err)
		}
	},
}

func init() {
	harvestCmd.Flags().StringVarP(&harvestFilter, "filter", "f", "", "substring matched against set ids and names")
	harvestCmd.Flags().StringSliceVarP(&harvestSets, "set", "s", nil, "restrict the harvest to these set ids (can be repeated)")
	harvestCmd.Flags().IntVar(&harvestMax, "max", 0, "cap on fetched records (0 = unlimited)")
	harvestCmd.Flags().DurationVar(&harvestDelay, "delay", time.Second, "politeness delay before each request")
	harvestCmd.Flags().BoolVar(&serve, "serve", false, "start the HTTP trigger endpoint instead of harvesting")
	harvestCmd.Flags().StringVar(&addr, "addr", ":6905", "HTTP listen address (with --serve)")
}
