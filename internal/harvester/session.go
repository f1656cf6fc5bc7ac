package harvester

import (
	"time"

	"github.com/google/uuid"

	"github.com/b33n-tech/scrapper-persee/internal/oai"
	"github.com/b33n-tech/scrapper-persee/pkg/metadata"
)

// SetIdentifier is one record identifier tagged with the set it was
// discovered under.
type SetIdentifier struct {
	Identifier string
	SetID      string
	SetName    string
}

// FetchError records one failed GetRecord.
type FetchError struct {
	Identifier string `json:"identifier"`
	Error      string `json:"error"`
}

// Session accumulates the results of one harvest run. Each stage fills
// in its own slice and never mutates an earlier one.
type Session struct {
	ID      string
	Started time.Time

	Sets        []oai.Set
	Identifiers []SetIdentifier
	Records     []metadata.Record
	Errors      []FetchError

	// Skipped counts identifiers whose GetRecord response carried no
	// metadata container. Not errors, not successes.
	Skipped int
}

// NewSession returns an empty session with a fresh id.
func NewSession() *Session {
	return &Session{
		ID:      uuid.New().String(),
		Started: time.Now(),
	}
}
