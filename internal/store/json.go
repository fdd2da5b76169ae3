package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

const (
	candidatesFile = "discovered_companies.json"
	profilesFile   = "company_research_results.json"
)

// JSONStore is the default driver: one ordered JSON array per phase output,
// in the interchange format downstream tooling reads directly.
type JSONStore struct {
	dir string
}

// NewJSONStore creates a JSON-file store rooted at dir.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

func (s *JSONStore) LoadCandidates(_ context.Context) ([]model.Candidate, error) {
	var candidates []model.Candidate
	if err := s.load(candidatesFile, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *JSONStore) SaveCandidates(_ context.Context, candidates []model.Candidate) error {
	return s.save(candidatesFile, candidates)
}

func (s *JSONStore) LoadProfiles(_ context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := s.load(profilesFile, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *JSONStore) SaveProfiles(_ context.Context, profiles []model.Profile) error {
	return s.save(profilesFile, profiles)
}

func (s *JSONStore) Migrate(_ context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return eris.Wrap(err, "store: create data dir")
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) load(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return eris.Wrapf(err, "store: read %s", name)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrapf(err, "store: parse %s", name)
	}
	return nil
}

// save writes via a temp file and rename so a crash never leaves a
// half-written collection.
func (s *JSONStore) save(name string, in any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return eris.Wrap(err, "store: create data dir")
	}

	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "store: marshal %s", name)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrapf(err, "store: write %s", name)
	}
	if err := os.Rename(tmp, path); err != nil {
		return eris.Wrapf(err, "store: rename %s", name)
	}
	return nil
}
