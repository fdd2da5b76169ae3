package discovery

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/oratio-tech/competitor-cli/internal/model"
	"github.com/oratio-tech/competitor-cli/pkg/hackernews"
)

var forumQueries = []string{
	"legal AI assistant",
	"legal chatbot",
	"legal tech",
	"contract AI",
	"ai lawyer",
	"compliance automation",
	"paralegal AI",
}

// Launch-post titles name the product up front: "Show HN: Name – pitch".
var launchTitleRe = regexp.MustCompile(`^(?:Show|Launch) HN:\s*([^–—(:,]+)`)

// ForumSource discovers product launches on Hacker News. Launch-post points
// are the community popularity signal carried on Candidate.Votes.
type ForumSource struct {
	client   hackernews.Client
	limiter  *rate.Limiter
	perQuery int
}

// NewForumSource creates the tech-community discovery source.
func NewForumSource(client hackernews.Client, perQuery int) *ForumSource {
	return &ForumSource{
		client:   client,
		limiter:  rate.NewLimiter(rate.Limit(1), 1),
		perQuery: perQuery,
	}
}

func (s *ForumSource) Name() string { return "tech_community" }

func (s *ForumSource) Discover(ctx context.Context) ([]model.Candidate, error) {
	var candidates []model.Candidate

	for _, query := range forumQueries {
		if err := s.limiter.Wait(ctx); err != nil {
			return candidates, err
		}

		resp, err := s.client.SearchStories(ctx, query, s.perQuery)
		if err != nil {
			zap.L().Warn("forum query failed",
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}

		for _, hit := range resp.Hits {
			name, ok := launchName(hit.Title)
			if !ok {
				continue
			}

			candidates = append(candidates, model.Candidate{
				Name:        name,
				Source:      "Hacker News",
				Category:    "legal_tech_product",
				Confidence:  model.ConfidenceHigh,
				Description: hit.Title,
				Votes:       hit.Points,
			})
		}
	}

	return candidates, nil
}

// launchName extracts the product name from a launch-post title.
func launchName(title string) (string, bool) {
	m := launchTitleRe.FindStringSubmatch(title)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if !isPlausibleCompanyName(name) {
		return "", false
	}
	return name, true
}
