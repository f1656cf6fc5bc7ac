package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/b33n-tech/scrapper-persee/internal/harvester"
	"github.com/b33n-tech/scrapper-persee/pkg/config"
	"github.com/b33n-tech/scrapper-persee/pkg/export"
	"github.com/b33n-tech/scrapper-persee/pkg/logger"
)

// Service ties the harvester to the export layer.
type Service struct {
	h   *harvester.Service
	cfg *config.Config
}

// Args selects what one harvest run covers.
type Args struct {
	// Filter is the case-insensitive substring matched against set ids
	// and names during discovery.
	Filter string
	// Sets restricts the harvest to these set ids; empty harvests every
	// discovered set.
	Sets []string
	// Export toggles writing the CSV/JSON files after the harvest.
	Export bool
}

// NewService builds the service from the loaded configuration.
func NewService(cfg *config.Config) *Service {
	return &Service{h: harvester.NewService(cfg), cfg: cfg}
}

// Run executes a harvest and, if requested, writes the exports. The
// session is returned even when some records failed to fetch; only a
// discovery failure is fatal.
func (s *Service) Run(ctx context.Context, args Args) (*harvester.Session, error) {
	session, err := s.h.Run(ctx, args.Filter, args.Sets)
	if err != nil {
		return nil, err
	}

	if args.Export && len(session.Records) > 0 {
		if err := s.export(args.Filter, session); err != nil {
			return session, err
		}
	}

	return session, nil
}

func (s *Service) export(filter string, session *harvester.Session) error {
	now := time.Now()

	csvPath := export.OutputPath(s.cfg.OutputDir, filter, "csv", now)
	if err := export.WriteCSVFile(csvPath, session.Records); err != nil {
		return fmt.Errorf("exporting CSV: %w", err)
	}
	logger.Info("Wrote %s", csvPath)

	jsonPath := export.OutputPath(s.cfg.OutputDir, filter, "json", now)
	if err := export.WriteJSONFile(jsonPath, session.Records); err != nil {
		return fmt.Errorf("exporting JSON: %w", err)
	}
	logger.Info("Wrote %s", jsonPath)

	return nil
}
