package research

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/oratio-tech/competitor-cli/internal/model"
	"github.com/oratio-tech/competitor-cli/pkg/anthropic"
)

// Enricher derives enrichment attributes for one company from its evidence
// bundle. Implementations never omit declared attributes: fields they cannot
// determine stay empty and are finalized to the Unknown sentinel later.
type Enricher interface {
	Enrich(ctx context.Context, name string, bundle model.EvidenceBundle) (model.Attributes, error)
}

// enrichmentKeys is the strict key set the model must return. Any missing or
// extra key invalidates the response.
var enrichmentKeys = []string{
	"ai_powered_legal_chatbot",
	"stage",
	"multilingual_support",
	"mobile_web_accessibility",
	"free_tier",
	"subscription_based",
	"target_audience",
	"coverage",
	"founding_team_rating",
	"direct_indirect",
	"comment",
}

// ModelEnricher asks the language model for the enrichment attributes using
// a fixed-schema JSON contract.
type ModelEnricher struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewModelEnricher creates a model-backed enricher.
func NewModelEnricher(client anthropic.Client, modelID string, maxTokens int64, temperature float64) *ModelEnricher {
	return &ModelEnricher{
		client:      client,
		model:       modelID,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

const systemPrompt = "You are a legal technology market research analyst. " +
	"Provide accurate, detailed analysis in valid JSON format only."

func (e *ModelEnricher) Enrich(ctx context.Context, name string, bundle model.EvidenceBundle) (model.Attributes, error) {
	temp := e.temperature
	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   e.maxTokens,
		System:      systemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(name, bundle)},
		},
	})
	if err != nil {
		return model.Attributes{}, eris.Wrap(err, "enrich: model call")
	}

	attrs, err := parseEnrichment(resp.Text())
	if err != nil {
		return model.Attributes{}, err
	}

	resp.Usage.LogCost(e.model, "enrich")
	return attrs, nil
}

// parseEnrichment validates the model output against the strict key set and
// maps it onto the typed attribute record.
func parseEnrichment(text string) (model.Attributes, error) {
	text = strings.TrimSpace(text)
	// tolerate a fenced code block around the JSON
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return model.Attributes{}, eris.Wrap(err, "enrich: parse model output")
	}

	fields := make(map[string]string, len(enrichmentKeys))
	for _, key := range enrichmentKeys {
		msg, ok := raw[key]
		if !ok {
			return model.Attributes{}, eris.Errorf("enrich: model output missing key %q", key)
		}
		var value string
		if err := json.Unmarshal(msg, &value); err != nil {
			// accept scalars like a bare rating number
			value = strings.Trim(string(msg), `"`)
		}
		fields[key] = value
	}
	for key := range raw {
		if !contains(enrichmentKeys, key) {
			return model.Attributes{}, eris.Errorf("enrich: model output has undeclared key %q", key)
		}
	}

	return model.Attributes{
		AIChatbot:         fields["ai_powered_legal_chatbot"],
		Stage:             fields["stage"],
		Multilingual:      fields["multilingual_support"],
		Accessibility:     fields["mobile_web_accessibility"],
		FreeTier:          fields["free_tier"],
		SubscriptionBased: fields["subscription_based"],
		TargetAudience:    fields["target_audience"],
		Coverage:          fields["coverage"],
		TeamRating:        fields["founding_team_rating"],
		DirectIndirect:    fields["direct_indirect"],
		Comment:           fields["comment"],
	}, nil
}

// FallbackEnricher tries the primary enricher and degrades to the fallback
// on any failure. Degradation is normal operation, not an error: the
// fallback's result is returned as the profile's attributes.
type FallbackEnricher struct {
	primary  Enricher
	fallback Enricher
}

// NewFallbackEnricher wraps primary with fallback.
func NewFallbackEnricher(primary, fallback Enricher) *FallbackEnricher {
	return &FallbackEnricher{primary: primary, fallback: fallback}
}

func (f *FallbackEnricher) Enrich(ctx context.Context, name string, bundle model.EvidenceBundle) (model.Attributes, error) {
	attrs, err := f.primary.Enrich(ctx, name, bundle)
	if err == nil {
		return attrs, nil
	}

	zap.L().Info("model enrichment unavailable, using heuristics",
		zap.String("company", name),
		zap.Error(err),
	)
	return f.fallback.Enrich(ctx, name, bundle)
}
