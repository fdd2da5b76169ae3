package discovery

import (
	"strings"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

var (
	directTerms   = []string{"chatbot", "ai assistant", "legal assistant", "legal ai"}
	indirectTerms = []string{"legal tech", "law tech", "contract", "litigation", "compliance"}
)

// Classify assigns a relevance tier from the candidate's name and
// description, then recomputes confidence as a point score: tier base points
// (direct 3, indirect 2, peripheral 1) plus one point each for an API-backed
// source tag, more than 100 repository stars, and more than 50 votes.
func Classify(c *model.Candidate) {
	text := strings.ToLower(c.Name) + strings.ToLower(c.Description)

	score := 0
	switch {
	case containsAny(text, directTerms):
		c.Relevance = model.RelevanceDirect
		score += 3
	case containsAny(text, indirectTerms):
		c.Relevance = model.RelevanceIndirect
		score += 2
	default:
		c.Relevance = model.RelevancePeripheral
		score++
	}

	if strings.Contains(c.Source, "API") {
		score++
	}
	if c.Stars > 100 {
		score++
	}
	if c.Votes > 50 {
		score++
	}

	switch {
	case score >= 4:
		c.Confidence = model.ConfidenceVeryHigh
	case score >= 3:
		c.Confidence = model.ConfidenceHigh
	case score >= 2:
		c.Confidence = model.ConfidenceMedium
	default:
		c.Confidence = model.ConfidenceLow
	}
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
