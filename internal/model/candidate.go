// Package model defines the typed records shared across the research pipeline:
// discovery candidates, per-company evidence bundles, and enriched profiles.
package model

import "time"

// Confidence is the ordered confidence level assigned to a candidate.
type Confidence string

const (
	ConfidenceLow      Confidence = "low"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceHigh     Confidence = "high"
	ConfidenceVeryHigh Confidence = "very_high"
)

// confidenceRank orders confidence levels for comparison.
var confidenceRank = map[Confidence]int{
	ConfidenceLow:      0,
	ConfidenceMedium:   1,
	ConfidenceHigh:     2,
	ConfidenceVeryHigh: 3,
}

// AtLeast reports whether c is at or above the given level.
func (c Confidence) AtLeast(other Confidence) bool {
	return confidenceRank[c] >= confidenceRank[other]
}

// Relevance classifies how close a candidate is to the target market.
type Relevance string

const (
	RelevanceDirect     Relevance = "direct"
	RelevanceIndirect   Relevance = "indirect"
	RelevancePeripheral Relevance = "peripheral"
)

// Candidate is a company discovered but not yet enriched. Identity is the
// normalized name (NormalizeName); classification fields (Relevance,
// Confidence) are set once by the discovery classifier.
type Candidate struct {
	Name       string     `json:"name"`
	Source     string     `json:"source"`
	Category   string     `json:"category"`
	Confidence Confidence `json:"confidence"`
	Relevance  Relevance  `json:"relevance,omitempty"`

	// Source-specific evidence, optional.
	Description       string    `json:"description,omitempty"`
	Stars             int       `json:"github_stars,omitempty"`
	Forks             int       `json:"github_forks,omitempty"`
	RepoURL           string    `json:"github_url,omitempty"`
	Votes             int       `json:"votes,omitempty"`
	Jurisdiction      string    `json:"jurisdiction,omitempty"`
	CompanyType       string    `json:"company_type,omitempty"`
	Status            string    `json:"status,omitempty"`
	IncorporationDate string    `json:"incorporation_date,omitempty"`
	DiscoveredAt      time.Time `json:"discovered_at,omitempty"`
}

// Key returns the candidate's deduplication key.
func (c Candidate) Key() string {
	return NormalizeName(c.Name)
}
