package discovery

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/oratio-tech/competitor-cli/internal/model"
	"github.com/oratio-tech/competitor-cli/pkg/gnews"
)

var newsSweepQueries = []string{
	"AI legal assistant startup 2025",
	"legal chatbot companies funding",
	"legal tech artificial intelligence",
	"legal technology startups Europe",
	"AI contract analysis companies",
	"legal document automation startups",
	"digital law firms AI technology",
	"legal research AI platforms",
	"venture capital legal tech investments",
	"Y Combinator legal technology startups",
}

// Capitalized-name patterns that tend to precede company suffixes or
// funding language in headlines.
var companyNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)\s+(?:Inc\.|LLC|Corp\.|Ltd\.|AI|Tech|Legal|Law)\b`),
	regexp.MustCompile(`\b([A-Z][a-zA-Z]*(?:AI|Bot|Tech|Legal|Law|Assistant))\b`),
	regexp.MustCompile(`\b([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+){0,2})\s+(?:raises|funding|startup|founded)\b`),
}

// Common capitalized words that the headline patterns false-positive on.
var stopNames = map[string]struct{}{
	"legal": {}, "law": {}, "the": {}, "and": {}, "with": {}, "for": {},
	"are": {}, "this": {}, "that": {}, "technology": {}, "tech": {},
	"artificial": {}, "intelligence": {}, "machine": {}, "learning": {},
}

// NewsSweepSource mines news headlines for company names matching
// capitalized-name patterns.
type NewsSweepSource struct {
	client   gnews.Client
	perQuery int
}

// NewNewsSweepSource creates the news-sweep discovery source.
func NewNewsSweepSource(client gnews.Client, perQuery int) *NewsSweepSource {
	return &NewsSweepSource{client: client, perQuery: perQuery}
}

func (s *NewsSweepSource) Name() string { return "news_sweep" }

func (s *NewsSweepSource) Discover(ctx context.Context) ([]model.Candidate, error) {
	var candidates []model.Candidate

	for _, query := range newsSweepQueries {
		if err := ctx.Err(); err != nil {
			return candidates, err
		}

		articles, err := s.client.Search(ctx, query, s.perQuery)
		if err != nil {
			zap.L().Warn("news sweep query failed",
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}

		for _, name := range extractCompanyNames(articles) {
			candidates = append(candidates, model.Candidate{
				Name:       name,
				Source:     "News: " + query,
				Category:   "legal_tech",
				Confidence: model.ConfidenceMedium,
			})
		}
	}

	return candidates, nil
}

func extractCompanyNames(articles []gnews.Article) []string {
	var text strings.Builder
	for _, a := range articles {
		text.WriteString(a.Title)
		text.WriteString(" ")
		text.WriteString(a.Description)
		text.WriteString(" ")
	}

	seen := make(map[string]struct{})
	var names []string
	for _, pattern := range companyNamePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text.String(), -1) {
			name := strings.TrimSpace(match[1])
			if !isPlausibleCompanyName(name) {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

func isPlausibleCompanyName(name string) bool {
	if len(name) <= 2 || len(name) >= 50 {
		return false
	}
	_, stop := stopNames[strings.ToLower(name)]
	return !stop
}
