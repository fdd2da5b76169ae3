package research

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

// Counts summarizes a research run for phase reporting.
type Counts struct {
	Researched   int
	Succeeded    int
	Failed       int
	WebsiteFound int
}

// Engine builds one profile per candidate. By default companies are
// processed sequentially with a randomized politeness delay between them;
// a bounded worker pool can be enabled, in which case the shared per-source
// rate limiters still cap each source globally and output order stays the
// discovery order.
type Engine struct {
	collector *Collector
	website   *WebsiteAnalyzer
	enricher  Enricher

	workers  int
	minDelay time.Duration
	maxDelay time.Duration
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithWorkers enables a bounded worker pool. Values below 2 keep the
// sequential default.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithCompanyDelay sets the randomized pause between companies.
func WithCompanyDelay(min, max time.Duration) EngineOption {
	return func(e *Engine) {
		e.minDelay = min
		e.maxDelay = max
	}
}

// NewEngine creates a research engine.
func NewEngine(collector *Collector, website *WebsiteAnalyzer, enricher Enricher, opts ...EngineOption) *Engine {
	e := &Engine{
		collector: collector,
		website:   website,
		enricher:  enricher,
		workers:   1,
		minDelay:  3 * time.Second,
		maxDelay:  6 * time.Second,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Run researches every candidate. A single company's failure is logged and
// skipped; it never aborts the batch. Profiles come back in candidate order.
func (e *Engine) Run(ctx context.Context, candidates []model.Candidate) ([]model.Profile, Counts, error) {
	if e.workers > 1 {
		return e.runParallel(ctx, candidates)
	}
	return e.runSequential(ctx, candidates)
}

func (e *Engine) runSequential(ctx context.Context, candidates []model.Candidate) ([]model.Profile, Counts, error) {
	var counts Counts
	profiles := make([]model.Profile, 0, len(candidates))

	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			return profiles, counts, err
		}
		if i > 0 {
			e.pause(ctx)
		}

		zap.L().Info("researching company",
			zap.String("company", c.Name),
			zap.Int("progress", i+1),
			zap.Int("total", len(candidates)),
		)

		counts.Researched++
		profile, err := e.researchOne(ctx, c)
		if err != nil {
			counts.Failed++
			zap.L().Error("company research failed, skipping",
				zap.String("company", c.Name),
				zap.Error(err),
			)
			continue
		}

		counts.Succeeded++
		if profile.Website != "" {
			counts.WebsiteFound++
		}
		profiles = append(profiles, profile)
	}

	return profiles, counts, nil
}

// runParallel researches with a bounded pool. Results land in a
// candidate-indexed slice so the output order is the discovery order, not
// completion order.
func (e *Engine) runParallel(ctx context.Context, candidates []model.Candidate) ([]model.Profile, Counts, error) {
	results := make([]*model.Profile, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, c := range candidates {
		g.Go(func() error {
			profile, err := e.researchOne(gctx, c)
			if err != nil {
				zap.L().Error("company research failed, skipping",
					zap.String("company", c.Name),
					zap.Error(err),
				)
				return nil
			}
			results[i] = &profile
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Counts{}, err
	}

	counts := Counts{Researched: len(candidates)}
	profiles := make([]model.Profile, 0, len(candidates))
	for _, p := range results {
		if p == nil {
			counts.Failed++
			continue
		}
		counts.Succeeded++
		if p.Website != "" {
			counts.WebsiteFound++
		}
		profiles = append(profiles, *p)
	}

	return profiles, counts, nil
}

// researchOne runs the full pipeline for a single company: collect
// fragments, analyze the website, merge, enrich, apply detectors, finalize.
func (e *Engine) researchOne(ctx context.Context, c model.Candidate) (model.Profile, error) {
	fragments := e.collector.Collect(ctx, c.Name)

	var facts WebsiteFacts
	if fragments.Website != "" && e.website != nil {
		var err error
		facts, err = e.website.Analyze(ctx, fragments.Website)
		if err != nil {
			logFragmentFailure("website", c.Name, err)
		}
	}

	bundle := Merge(fragments)

	attrs, err := e.enricher.Enrich(ctx, c.Name, bundle)
	if err != nil {
		return model.Profile{}, err
	}

	facts.Apply(&attrs)

	if funding := DetectFunding(bundle); funding.Stage != "" {
		attrs.Stage = funding.Stage
		attrs.FundraisingStage = funding.FundraisingStage
	}
	if attrs.Partnerships == "" {
		attrs.Partnerships = DetectPartnerships(bundle)
	}
	if attrs.UserBaseGrowth == "" {
		attrs.UserBaseGrowth = DetectUserMetrics(bundle)
	}

	attrs.Finalize()

	return model.Profile{
		Competitor:   c.Name,
		Discovery:    c,
		ResearchedAt: time.Now().UTC(),
		Website:      fragments.Website,
		Attributes:   attrs,
	}, nil
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
