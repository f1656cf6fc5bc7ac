// Package harvester composes the harvest stages: set discovery,
// identifier collection, deduplication and record fetch. The stages are
// independently invocable and run strictly forward; nothing feeds back.
package harvester

import (
	"context"
	"fmt"

	"github.com/b33n-tech/scrapper-persee/internal/oai"
	"github.com/b33n-tech/scrapper-persee/pkg/config"
	"github.com/b33n-tech/scrapper-persee/pkg/logger"
	"github.com/b33n-tech/scrapper-persee/pkg/metadata"
	"github.com/b33n-tech/scrapper-persee/pkg/utils"
	"github.com/b33n-tech/scrapper-persee/pkg/version"
)

// Service runs harvests against one repository.
type Service struct {
	client *oai.Client
	cfg    *config.Config
}

// NewService creates a harvester for the configured endpoint.
func NewService(cfg *config.Config) *Service {
	client := oai.NewClient(
		cfg.Endpoint,
		cfg.MetadataPrefix,
		cfg.Delay,
		cfg.DiscoveryDelay,
		cfg.Timeout,
		version.UserAgent(),
	)
	return &Service{client: client, cfg: cfg}
}

// DiscoverSets lists the repository sets whose id or name contains the
// filter. Any error aborts the whole stage; no partial result survives.
func (s *Service) DiscoverSets(ctx context.Context, filter string) ([]oai.Set, error) {
	sets, err := s.client.ListSets(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("discovering sets: %w", err)
	}
	logger.Info("Found %d set(s) matching %q", len(sets), filter)
	return sets, nil
}

// CollectIdentifiers lists all non-deleted identifiers of the given
// sets, each tagged with its set. A set that errors contributes nothing
// and is logged as a warning; prior sets' identifiers are kept.
func (s *Service) CollectIdentifiers(ctx context.Context, sets []oai.Set) []SetIdentifier {
	var all []SetIdentifier
	for _, set := range sets {
		headers, err := s.client.ListIdentifiers(ctx, set.Spec)
		if err != nil {
			logger.Warn("Set %s: %s", set.Spec, utils.TruncateError(err.Error(), 200))
			continue
		}
		for _, h := range headers {
			all = append(all, SetIdentifier{
				Identifier: h.Identifier,
				SetID:      set.Spec,
				SetName:    set.Name,
			})
		}
		logger.Info("Set %s: %d identifier(s)", set.Spec, len(headers))
	}
	return all
}

// Dedupe keeps the first occurrence of each identifier, preserving
// input order. First occurrence wins the set attribution, so sort-based
// dedup would be wrong here.
func Dedupe(ids []SetIdentifier) []SetIdentifier {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]SetIdentifier, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id.Identifier]; ok {
			continue
		}
		seen[id.Identifier] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// FetchRecords fetches and normalizes the metadata of each identifier,
// up to max (0 = unlimited). A fetch error skips the identifier and is
// collected; a missing metadata container is silently skipped.
func (s *Service) FetchRecords(ctx context.Context, ids []SetIdentifier, max int) (records []metadata.Record, fetchErrs []FetchError, skipped int) {
	total := len(ids)
	if max > 0 && max < total {
		total = max
	}

	for i, id := range ids[:total] {
		dc, err := s.client.GetRecord(ctx, id.Identifier)
		if err != nil {
			logger.Warn("Fetch %s: %s", id.Identifier, utils.TruncateError(err.Error(), 200))
			fetchErrs = append(fetchErrs, FetchError{Identifier: id.Identifier, Error: err.Error()})
			continue
		}
		if dc == nil {
			skipped++
			continue
		}

		rec := dc.Normalize(id.Identifier, s.cfg.URLRules)
		rec.SetName = id.SetName
		records = append(records, rec)

		if (i+1)%10 == 0 {
			logger.Debug("Fetched %d/%d record(s)", i+1, total)
		}
	}
	return records, fetchErrs, skipped
}

// Run executes the full pipeline. selected restricts the harvest to
// those set ids; empty means every discovered set.
func (s *Service) Run(ctx context.Context, filter string, selected []string) (*Session, error) {
	session := NewSession()
	logger.Debug("Harvest session %s", session.ID)

	sets, err := s.DiscoverSets(ctx, filter)
	if err != nil {
		return nil, err
	}
	session.Sets = restrictSets(sets, selected)
	if len(session.Sets) == 0 {
		return session, nil
	}

	collected := s.CollectIdentifiers(ctx, session.Sets)
	session.Identifiers = Dedupe(collected)
	logger.Info("%d unique identifier(s) collected", len(session.Identifiers))

	session.Records, session.Errors, session.Skipped = s.FetchRecords(ctx, session.Identifiers, s.cfg.MaxRecords)
	logger.Info("Harvest done: %d record(s), %d error(s), %d without metadata",
		len(session.Records), len(session.Errors), session.Skipped)

	return session, nil
}

// restrictSets keeps only the sets whose spec is in selected, in
// discovery order. Empty selection keeps everything.
func restrictSets(sets []oai.Set, selected []string) []oai.Set {
	if len(selected) == 0 {
		return sets
	}
	want := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		want[id] = struct{}{}
	}
	kept := make([]oai.Set, 0, len(sets))
	for _, s := range sets {
		if _, ok := want[s.Spec]; ok {
			kept = append(kept, s)
		}
	}
	return kept
}
