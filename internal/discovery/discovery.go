// Package discovery finds candidate companies across public sources,
// deduplicates them by normalized name, and classifies each into a
// relevance tier with a recomputed confidence level.
package discovery

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

// Source produces raw candidates from one external origin. Sources run in a
// fixed declared order because deduplication is first-occurrence-wins.
type Source interface {
	Name() string
	Discover(ctx context.Context) ([]model.Candidate, error)
}

// Counts summarizes a discovery run for phase reporting.
type Counts struct {
	Found        int
	Deduplicated int
	BySource     map[string]int
}

// Engine runs the discovery sources in order and post-processes the
// combined candidate list.
type Engine struct {
	sources  []Source
	minDelay time.Duration
	maxDelay time.Duration
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithDelay sets the randomized pause between sources.
func WithDelay(min, max time.Duration) EngineOption {
	return func(e *Engine) {
		e.minDelay = min
		e.maxDelay = max
	}
}

// NewEngine creates a discovery engine over the given sources. Order is
// significant: earlier sources win deduplication ties.
func NewEngine(sources []Source, opts ...EngineOption) *Engine {
	e := &Engine{
		sources:  sources,
		minDelay: time.Second,
		maxDelay: 2 * time.Second,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Run executes all sources, deduplicates, and classifies. A failing source
// contributes nothing but never aborts the run.
func (e *Engine) Run(ctx context.Context) ([]model.Candidate, Counts, error) {
	counts := Counts{BySource: make(map[string]int)}

	var all []model.Candidate
	for i, src := range e.sources {
		if err := ctx.Err(); err != nil {
			return nil, counts, err
		}
		if i > 0 {
			e.pause(ctx)
		}

		found, err := src.Discover(ctx)
		if err != nil {
			zap.L().Warn("discovery source failed",
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			continue
		}

		now := time.Now().UTC()
		for j := range found {
			if found[j].DiscoveredAt.IsZero() {
				found[j].DiscoveredAt = now
			}
		}

		zap.L().Info("discovery source complete",
			zap.String("source", src.Name()),
			zap.Int("candidates", len(found)),
		)
		counts.BySource[src.Name()] = len(found)
		all = append(all, found...)
	}

	counts.Found = len(all)

	unique := Dedupe(all)
	for i := range unique {
		Classify(&unique[i])
	}
	counts.Deduplicated = len(unique)

	zap.L().Info("discovery complete",
		zap.Int("found", counts.Found),
		zap.Int("unique", counts.Deduplicated),
	)

	return unique, counts, nil
}

func (e *Engine) pause(ctx context.Context) {
	d := e.minDelay
	if e.maxDelay > e.minDelay {
		d += time.Duration(rand.Int63n(int64(e.maxDelay - e.minDelay)))
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
