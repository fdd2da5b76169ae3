package research

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

// referenceYear anchors incorporation-age stage estimates.
const referenceYear = 2025

var (
	aiNameTerms   = []string{"ai", "chatbot", "assistant", "gpt", "bot"}
	aiSearchTerms = []string{"artificial intelligence", "machine learning", "nlp", "chatbot"}
	aiNewsTerms   = []string{"ai", "artificial intelligence", "chatbot"}
	aiRepoTerms   = []string{"ai", "ml", "nlp", "chatbot", "assistant"}

	fundingTerms = []string{"funding", "investment", "series", "raised", "venture"}
)

// HeuristicEnricher derives attributes by deterministic scoring over the
// evidence bundle. It backs the model enricher when the model is
// unavailable, so identical bundles must always yield identical attributes.
type HeuristicEnricher struct{}

// NewHeuristicEnricher creates the rule-based enricher.
func NewHeuristicEnricher() *HeuristicEnricher {
	return &HeuristicEnricher{}
}

func (h *HeuristicEnricher) Enrich(_ context.Context, name string, bundle model.EvidenceBundle) (model.Attributes, error) {
	attrs := model.Attributes{
		AIChatbot:  classifyAISignal(name, bundle),
		Stage:      classifyStage(bundle),
		Coverage:   classifyCoverage(bundle),
		TeamRating: "3",
		Comment:    heuristicComment(name, bundle),
	}
	return attrs, nil
}

// classifyAISignal scores AI indicators across the bundle: AI terms in the
// company name weigh 2, in search text 1, in news 1 (first match only), and
// in repository descriptions 1 (first match only).
func classifyAISignal(name string, bundle model.EvidenceBundle) string {
	indicators := 0

	if containsAny(strings.ToLower(name), aiNameTerms) {
		indicators += 2
	}
	if containsAny(strings.ToLower(bundle.SearchText), aiSearchTerms) {
		indicators++
	}
	for _, item := range bundle.News {
		if containsAny(strings.ToLower(item.Title+" "+item.Description), aiNewsTerms) {
			indicators++
			break
		}
	}
	for _, repo := range bundle.Code.Repos {
		if containsAny(strings.ToLower(repo.Name+" "+repo.Description), aiRepoTerms) {
			indicators++
			break
		}
	}

	switch {
	case indicators >= 3:
		return "Yes - multiple AI indicators found"
	case indicators >= 1:
		return "Possible - some AI indicators found"
	default:
		return "No - no clear AI indicators"
	}
}

// classifyStage maps funding keywords in news to a stage; with no funding
// news it estimates from the registry incorporation year.
func classifyStage(bundle model.EvidenceBundle) string {
	for _, item := range bundle.News {
		text := strings.ToLower(item.Title + " " + item.Description)
		if !containsAny(text, fundingTerms) {
			continue
		}
		switch {
		case strings.Contains(text, "series c") || strings.Contains(text, "series d"):
			return "Established"
		case strings.Contains(text, "series a") || strings.Contains(text, "series b"):
			return "Growth"
		case strings.Contains(text, "seed"):
			return "Startup"
		}
		return ""
	}

	if date := bundle.Registry.IncorporationDate; len(date) >= 4 {
		if year, err := strconv.Atoi(date[:4]); err == nil {
			switch age := referenceYear - year; {
			case age >= 8:
				return "Established"
			case age >= 4:
				return "Growth"
			default:
				return "Startup"
			}
		}
	}

	return ""
}

// classifyCoverage unions the registry jurisdiction region with keyword
// regions found across all text sources, joined with "/" in first-seen
// order.
func classifyCoverage(bundle model.EvidenceBundle) string {
	var regions []string
	add := func(region string) {
		if region != "" && !contains(regions, region) {
			regions = append(regions, region)
		}
	}

	if j := strings.ToLower(bundle.Registry.Jurisdiction); j != "" {
		switch {
		case strings.Contains(j, "de") || strings.Contains(j, "german"):
			add("Germany")
		case containsAny(j, []string{"gb", "fr", "es", "it", "nl"}):
			add("Europe")
		case strings.Contains(j, "us"):
			add("Global/US")
		}
	}

	var text strings.Builder
	text.WriteString(bundle.SearchText)
	for _, item := range bundle.News {
		text.WriteString(" ")
		text.WriteString(item.Title)
		text.WriteString(" ")
		text.WriteString(item.Description)
	}
	all := strings.ToLower(text.String())

	switch {
	case containsAny(all, []string{"german", "germany", "deutsch"}):
		add("Germany")
	case containsAny(all, []string{"europe", "european", "eu"}):
		add("Europe")
	case containsAny(all, []string{"global", "worldwide", "international"}):
		add("Global")
	}

	return strings.Join(regions, "/")
}

func heuristicComment(name string, bundle model.EvidenceBundle) string {
	var parts []string

	if n := len(bundle.News); n > 0 {
		parts = append(parts, fmt.Sprintf("recent news: %d articles", n))
	}
	if bundle.Code.RepoCount > 0 {
		parts = append(parts, fmt.Sprintf("code hosting: %d repositories, %d stars",
			bundle.Code.RepoCount, bundle.Code.TotalStars))
	}
	if !bundle.Registry.Empty() {
		parts = append(parts, fmt.Sprintf("registered in %s", bundle.Registry.Jurisdiction))
	}
	if n := len(bundle.Discussions); n > 0 {
		points := 0
		for _, d := range bundle.Discussions {
			points += d.Points
		}
		parts = append(parts, fmt.Sprintf("HN discussions: %d posts, %d total points", n, points))
	}

	comment := "Heuristic analysis for " + name
	if len(parts) > 0 {
		comment += ". Signals: " + strings.Join(parts, "; ")
	}
	return comment
}
