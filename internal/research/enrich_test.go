package research

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oratio-tech/competitor-cli/internal/model"
	"github.com/oratio-tech/competitor-cli/pkg/anthropic"
)

const validEnrichmentJSON = `{
	"ai_powered_legal_chatbot": "Yes - production chatbot",
	"stage": "Growth",
	"multilingual_support": "German/English",
	"mobile_web_accessibility": "Both",
	"free_tier": "Yes",
	"subscription_based": "Yes",
	"target_audience": "Law firms",
	"coverage": "Germany",
	"founding_team_rating": "4",
	"direct_indirect": "Direct",
	"comment": "Strong German market presence"
}`

func TestParseEnrichmentValid(t *testing.T) {
	attrs, err := parseEnrichment(validEnrichmentJSON)
	require.NoError(t, err)

	assert.Equal(t, "Yes - production chatbot", attrs.AIChatbot)
	assert.Equal(t, "Growth", attrs.Stage)
	assert.Equal(t, "German/English", attrs.Multilingual)
	assert.Equal(t, "4", attrs.TeamRating)
	assert.Equal(t, "Direct", attrs.DirectIndirect)

	// keys outside the contract stay untouched
	assert.Empty(t, attrs.BusinessModel)
	assert.Empty(t, attrs.Pricing)
}

func TestParseEnrichmentFencedBlock(t *testing.T) {
	attrs, err := parseEnrichment("```json\n" + validEnrichmentJSON + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "Growth", attrs.Stage)
}

func TestParseEnrichmentRejectsMissingKey(t *testing.T) {
	_, err := parseEnrichment(`{"stage": "Growth"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing key")
}

func TestParseEnrichmentRejectsUndeclaredKey(t *testing.T) {
	withExtra := validEnrichmentJSON[:len(validEnrichmentJSON)-1] + `, "surprise": "x"}`
	_, err := parseEnrichment(withExtra)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared key")
}

func TestParseEnrichmentRejectsProse(t *testing.T) {
	_, err := parseEnrichment("Here is my analysis of the company...")
	assert.Error(t, err)
}

func TestParseEnrichmentNumericRating(t *testing.T) {
	numeric := `{
		"ai_powered_legal_chatbot": "Yes",
		"stage": "Growth",
		"multilingual_support": "German",
		"mobile_web_accessibility": "Web",
		"free_tier": "No",
		"subscription_based": "Yes",
		"target_audience": "SMEs",
		"coverage": "Europe",
		"founding_team_rating": 4,
		"direct_indirect": "Indirect",
		"comment": "ok"
	}`
	attrs, err := parseEnrichment(numeric)
	require.NoError(t, err)
	assert.Equal(t, "4", attrs.TeamRating)
}

type mockAnthropicClient struct {
	resp *anthropic.MessageResponse
	err  error
}

func (m *mockAnthropicClient) CreateMessage(_ context.Context, _ anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	return m.resp, m.err
}

func TestModelEnricherParsesResponse(t *testing.T) {
	client := &mockAnthropicClient{resp: &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: validEnrichmentJSON}},
	}}

	enricher := NewModelEnricher(client, "claude-haiku-4-5-20251001", 2000, 0.1)
	attrs, err := enricher.Enrich(context.Background(), "Acme Legal", model.EvidenceBundle{})
	require.NoError(t, err)
	assert.Equal(t, "Growth", attrs.Stage)
}

func TestModelEnricherPropagatesCallFailure(t *testing.T) {
	client := &mockAnthropicClient{err: errors.New("api unreachable")}

	enricher := NewModelEnricher(client, "claude-haiku-4-5-20251001", 2000, 0.1)
	_, err := enricher.Enrich(context.Background(), "Acme Legal", model.EvidenceBundle{})
	assert.Error(t, err)
}

type failingEnricher struct{}

func (failingEnricher) Enrich(context.Context, string, model.EvidenceBundle) (model.Attributes, error) {
	return model.Attributes{}, errors.New("model down")
}

func TestFallbackEnricherDegradesToHeuristics(t *testing.T) {
	enricher := NewFallbackEnricher(failingEnricher{}, NewHeuristicEnricher())

	attrs, err := enricher.Enrich(context.Background(), "Harvey AI", model.EvidenceBundle{
		SearchText: "machine learning for legal research",
	})
	require.NoError(t, err)
	assert.Equal(t, "Yes - multiple AI indicators found", attrs.AIChatbot)
}

func TestFallbackEnricherPrefersPrimary(t *testing.T) {
	client := &mockAnthropicClient{resp: &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: validEnrichmentJSON}},
	}}
	primary := NewModelEnricher(client, "claude-haiku-4-5-20251001", 2000, 0.1)

	enricher := NewFallbackEnricher(primary, NewHeuristicEnricher())
	attrs, err := enricher.Enrich(context.Background(), "Acme Legal", model.EvidenceBundle{})
	require.NoError(t, err)
	assert.Equal(t, "Strong German market presence", attrs.Comment)
}
