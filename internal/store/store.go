// Package store persists the pipeline's phase outputs: the candidate list
// after discovery and the profile list after research. Collections are
// ordered and written whole at phase boundaries.
package store

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"

	"github.com/oratio-tech/competitor-cli/internal/config"
	"github.com/oratio-tech/competitor-cli/internal/model"
)

// ErrNotFound signals that a phase output has not been written yet. Callers
// use it to report "run the earlier phase first" instead of crashing.
var ErrNotFound = errors.New("store: not found")

// Store persists candidate and profile collections between pipeline phases.
// Save replaces the whole ordered collection; Load returns ErrNotFound when
// the collection was never saved.
type Store interface {
	LoadCandidates(ctx context.Context) ([]model.Candidate, error)
	SaveCandidates(ctx context.Context, candidates []model.Candidate) error
	LoadProfiles(ctx context.Context) ([]model.Profile, error)
	SaveProfiles(ctx context.Context, profiles []model.Profile) error

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates the store selected by configuration.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "json":
		return NewJSONStore(cfg.Dir), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Dir)
	case "postgres":
		return NewPostgresStore(context.Background(), cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
