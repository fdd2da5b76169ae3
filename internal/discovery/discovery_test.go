package discovery

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

type stubSource struct {
	name       string
	candidates []model.Candidate
	err        error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Discover(_ context.Context) ([]model.Candidate, error) {
	return s.candidates, s.err
}

func TestEngineRunDeduplicatesAndClassifies(t *testing.T) {
	sources := []Source{
		&stubSource{name: "first", candidates: []model.Candidate{
			{Name: "Harvey AI", Source: "Startup Database"},
			{Name: "DoNotPay", Source: "Startup Database"},
		}},
		&stubSource{name: "second", candidates: []model.Candidate{
			{Name: "harvey-ai", Source: "News: legal tech"},
			{Name: "LawGeex", Source: "News: legal tech"},
		}},
	}

	engine := NewEngine(sources, WithDelay(0, 0))
	candidates, counts, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, counts.Found)
	assert.Equal(t, 3, counts.Deduplicated)
	require.Len(t, candidates, 3)
	assert.Equal(t, "Harvey AI", candidates[0].Name)

	for _, c := range candidates {
		assert.NotEmpty(t, c.Relevance)
		assert.NotEmpty(t, c.Confidence)
		assert.False(t, c.DiscoveredAt.IsZero())
	}
}

func TestEngineRunSourceFailureIsIsolated(t *testing.T) {
	sources := []Source{
		&stubSource{name: "broken", err: errors.New("boom")},
		&stubSource{name: "working", candidates: []model.Candidate{
			{Name: "Spellbook", Source: "Startup Database"},
		}},
	}

	engine := NewEngine(sources, WithDelay(0, 0))
	candidates, counts, err := engine.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "Spellbook", candidates[0].Name)
	assert.Equal(t, 0, counts.BySource["broken"])
	assert.Equal(t, 1, counts.BySource["working"])
}

func TestEngineRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine([]Source{
		&stubSource{name: "never", candidates: []model.Candidate{{Name: "Nope Inc"}}},
	})
	_, _, err := engine.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeedSourceEmitsAllLists(t *testing.T) {
	seeds := SeedLists{
		StartupDatabases: []string{"Harvey AI"},
		GermanLegalTech:  []string{"Smartlaw"},
		KnownCompetitors: []string{"LegalZoom"},
	}

	candidates, err := NewSeedSource(seeds).Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, "Startup Database", candidates[0].Source)
	assert.Equal(t, "german_legal_tech", candidates[1].Category)
	assert.Equal(t, "Known Competitor", candidates[2].Source)
	for _, c := range candidates {
		assert.Equal(t, model.ConfidenceHigh, c.Confidence)
	}
}

func TestDefaultSeedsNonEmpty(t *testing.T) {
	seeds := DefaultSeeds()
	assert.NotEmpty(t, seeds.StartupDatabases)
	assert.NotEmpty(t, seeds.GermanLegalTech)
	assert.NotEmpty(t, seeds.KnownCompetitors)
}

func TestLoadSeedsMissingFileFallsBack(t *testing.T) {
	seeds, err := LoadSeeds("testdata/does-not-exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultSeeds(), seeds)
}

func TestLoadSeedsFromFile(t *testing.T) {
	path := t.TempDir() + "/seeds.yaml"
	content := []byte("startup_databases:\n  - Harvey AI\nknown_competitors:\n  - LegalZoom\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	seeds, err := LoadSeeds(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Harvey AI"}, seeds.StartupDatabases)
	assert.Equal(t, []string{"LegalZoom"}, seeds.KnownCompetitors)
	assert.Empty(t, seeds.GermanLegalTech)
}

func TestEnginePauseRespectsCancel(t *testing.T) {
	engine := NewEngine(nil, WithDelay(time.Hour, time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		engine.pause(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pause did not return on cancelled context")
	}
}
