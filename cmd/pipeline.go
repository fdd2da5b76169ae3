package main

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/oratio-tech/competitor-cli/internal/discovery"
	"github.com/oratio-tech/competitor-cli/internal/export"
	"github.com/oratio-tech/competitor-cli/internal/model"
	"github.com/oratio-tech/competitor-cli/internal/research"
	"github.com/oratio-tech/competitor-cli/internal/resilience"
	"github.com/oratio-tech/competitor-cli/internal/store"
	"github.com/oratio-tech/competitor-cli/pkg/anthropic"
	"github.com/oratio-tech/competitor-cli/pkg/duckduckgo"
	"github.com/oratio-tech/competitor-cli/pkg/github"
	"github.com/oratio-tech/competitor-cli/pkg/gnews"
	"github.com/oratio-tech/competitor-cli/pkg/hackernews"
	"github.com/oratio-tech/competitor-cli/pkg/opencorporates"
)

// openStore opens the configured store and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// runDiscovery executes the discovery phase and persists the candidate list.
func runDiscovery(ctx context.Context, st store.Store) ([]model.Candidate, error) {
	seeds, err := discovery.LoadSeeds(cfg.Discovery.SeedFile)
	if err != nil {
		return nil, eris.Wrap(err, "load seeds")
	}

	// Seed lists go first: on duplicate names the curated entry wins.
	sources := []discovery.Source{discovery.NewSeedSource(seeds)}
	if !cfg.Discovery.SkipRemoteAPIs {
		sources = append(sources,
			discovery.NewGitHubSource(
				github.NewClient(github.WithBaseURL(cfg.Sources.GitHubBaseURL)),
				cfg.Discovery.MaxPerQuery, cfg.Discovery.MinRepoStars),
			discovery.NewForumSource(
				hackernews.NewClient(hackernews.WithBaseURL(cfg.Sources.HackerNewsBaseURL)),
				cfg.Discovery.MaxPerQuery),
			discovery.NewRegistrySource(
				opencorporates.NewClient(opencorporates.WithBaseURL(cfg.Sources.OpenCorporatesBaseURL)),
				cfg.Discovery.MaxPerQuery),
			discovery.NewNewsSweepSource(
				gnews.NewClient(gnews.WithBaseURL(cfg.Sources.NewsBaseURL)),
				cfg.Discovery.MaxPerQuery),
		)
	}

	engine := discovery.NewEngine(sources,
		discovery.WithDelay(secs(cfg.Discovery.MinDelaySecs), secs(cfg.Discovery.MaxDelaySecs)))

	candidates, counts, err := engine.Run(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "discovery run")
	}
	if len(candidates) == 0 {
		return nil, eris.New("discovery produced no candidates")
	}

	if err := st.SaveCandidates(ctx, candidates); err != nil {
		return nil, eris.Wrap(err, "save candidates")
	}

	byRelevance := make(map[model.Relevance]int)
	for _, c := range candidates {
		byRelevance[c.Relevance]++
	}
	zap.L().Info("discovery phase complete",
		zap.Int("found", counts.Found),
		zap.Int("unique", counts.Deduplicated),
		zap.Int("direct", byRelevance[model.RelevanceDirect]),
		zap.Int("indirect", byRelevance[model.RelevanceIndirect]),
		zap.Int("peripheral", byRelevance[model.RelevancePeripheral]),
	)
	return candidates, nil
}

// runResearch executes the research phase over the stored candidates and
// persists the resulting profiles.
func runResearch(ctx context.Context, st store.Store) ([]model.Profile, error) {
	candidates, err := st.LoadCandidates(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, eris.New("no discovered companies found, run discover first")
	}
	if err != nil {
		return nil, eris.Wrap(err, "load candidates")
	}

	collector := research.NewCollector(
		duckduckgo.NewClient(duckduckgo.WithBaseURL(cfg.Sources.DuckDuckGoBaseURL)),
		gnews.NewClient(gnews.WithBaseURL(cfg.Sources.NewsBaseURL)),
		hackernews.NewClient(hackernews.WithBaseURL(cfg.Sources.HackerNewsBaseURL)),
		opencorporates.NewClient(opencorporates.WithBaseURL(cfg.Sources.OpenCorporatesBaseURL)),
		github.NewClient(github.WithBaseURL(cfg.Sources.GitHubBaseURL)),
		research.WithRetryPolicy(resilience.Policy{MaxAttempts: cfg.Research.MaxRetries}),
		research.WithTimeouts(
			time.Duration(cfg.Sources.SearchTimeoutSecs)*time.Second,
			time.Duration(cfg.Sources.RegistryTimeoutSecs)*time.Second),
	)
	website := research.NewWebsiteAnalyzer(time.Duration(cfg.Sources.WebsiteTimeoutSecs) * time.Second)

	heuristic := research.NewHeuristicEnricher()
	var enricher research.Enricher = heuristic
	if cfg.Anthropic.Key != "" {
		primary := research.NewModelEnricher(
			anthropic.NewClient(cfg.Anthropic.Key),
			cfg.Anthropic.Model, cfg.Anthropic.MaxTokens, cfg.Anthropic.Temperature)
		enricher = research.NewFallbackEnricher(primary, heuristic)
	} else {
		zap.L().Warn("no anthropic api key configured, using heuristic enrichment only")
	}

	engine := research.NewEngine(collector, website, enricher,
		research.WithWorkers(cfg.Research.Workers),
		research.WithCompanyDelay(secs(cfg.Research.MinDelaySecs), secs(cfg.Research.MaxDelaySecs)))

	profiles, counts, err := engine.Run(ctx, candidates)
	if err != nil {
		return nil, eris.Wrap(err, "research run")
	}
	if len(profiles) == 0 {
		return nil, eris.New("research produced no profiles")
	}

	if err := st.SaveProfiles(ctx, profiles); err != nil {
		return nil, eris.Wrap(err, "save profiles")
	}

	zap.L().Info("research phase complete",
		zap.Int("researched", counts.Researched),
		zap.Int("succeeded", counts.Succeeded),
		zap.Int("failed", counts.Failed),
		zap.Int("websites_found", counts.WebsiteFound),
	)
	return profiles, nil
}

// runExport executes the export phase against the stored profiles.
func runExport(ctx context.Context, st store.Store, output string) error {
	profiles, err := st.LoadProfiles(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return eris.New("no research results found, run research first")
	}
	if err != nil {
		return eris.Wrap(err, "load profiles")
	}

	if output == "" {
		output = cfg.Export.OutputFile
	}
	if err := export.NewExporter().Write(profiles, output); err != nil {
		return eris.Wrap(err, "write workbook")
	}
	return nil
}

func secs(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
