package model

import "time"

// Unknown is the explicit absence sentinel for profile attributes. Every
// attribute in a finalized profile carries either a real value or Unknown,
// never an empty string or missing key.
const Unknown = "Unknown"

// Attributes holds the fixed enrichment attribute set, one field per
// attribute. The struct (rather than a string-keyed map) makes "every field
// always present" a construction-time invariant: Finalize fills any field
// left empty with the Unknown sentinel.
type Attributes struct {
	BusinessModel     string `json:"business_model"`
	AIChatbot         string `json:"ai_powered_legal_chatbot"`
	Stage             string `json:"stage"`
	FundraisingStage  string `json:"fundraising_stage"`
	Multilingual      string `json:"multilingual_support"`
	Accessibility     string `json:"mobile_web_accessibility"`
	APIIntegration    string `json:"api_integration"`
	FreeTier          string `json:"free_tier"`
	SubscriptionBased string `json:"subscription_based"`
	Pricing           string `json:"pricing"`
	TargetAudience    string `json:"target_audience"`
	UserBaseGrowth    string `json:"user_base_growth_rate"`
	Partnerships      string `json:"partnerships_integrations"`
	Coverage          string `json:"coverage"`
	Product           string `json:"product"`
	TeamRating        string `json:"founding_team_rating"`
	DirectIndirect    string `json:"direct_indirect"`
	Comment           string `json:"comment"`
}

// fields returns pointers to every attribute field, in export column order.
func (a *Attributes) fields() []*string {
	return []*string{
		&a.BusinessModel, &a.AIChatbot, &a.Stage, &a.FundraisingStage,
		&a.Multilingual, &a.Accessibility, &a.APIIntegration, &a.FreeTier,
		&a.SubscriptionBased, &a.Pricing, &a.TargetAudience, &a.UserBaseGrowth,
		&a.Partnerships, &a.Coverage, &a.Product, &a.TeamRating,
		&a.DirectIndirect, &a.Comment,
	}
}

// Finalize replaces every empty attribute with the Unknown sentinel.
func (a *Attributes) Finalize() {
	for _, f := range a.fields() {
		if *f == "" {
			*f = Unknown
		}
	}
}

// Complete reports whether every attribute is populated (real value or Unknown).
func (a *Attributes) Complete() bool {
	for _, f := range a.fields() {
		if *f == "" {
			return false
		}
	}
	return true
}

// Values returns the attribute values in export column order.
func (a *Attributes) Values() []string {
	fields := a.fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = *f
	}
	return out
}

// AttributeLabels are the spreadsheet column headers for Attributes, in the
// same order as Attributes.Values.
var AttributeLabels = []string{
	"Business Model",
	"AI-Powered Legal Chatbot",
	"Stage",
	"Fundraising stage",
	"Multilingual Support",
	"Mobile & Web Accessibility",
	"API Integration",
	"Free Tier",
	"Subscription-Based",
	"Pricing",
	"Target Audience",
	"User Base & Growth Rate",
	"Partnerships & Integrations",
	"Coverage",
	"Product",
	"Founding Team (/5)",
	"Direct / Indirect",
	"Comment",
}

// Profile is the durable enriched record for one company. It embeds the
// originating candidate's discovery metadata rather than referencing it by
// key, and is never mutated after creation. Attributes is embedded so the
// JSON interchange format is flat: one key per enrichment attribute
// alongside the identity and timestamp keys.
type Profile struct {
	Competitor   string    `json:"competitor"`
	Discovery    Candidate `json:"discovery_info"`
	ResearchedAt time.Time `json:"research_timestamp"`
	Website      string    `json:"website"`
	Attributes
}
