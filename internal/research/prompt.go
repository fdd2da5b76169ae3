package research

import (
	"fmt"
	"strings"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

const promptSearchTextCap = 2000

// buildPrompt embeds the evidence bundle into the fixed-schema research
// request. Section order mirrors the merge order so identical bundles
// produce identical prompts.
func buildPrompt(name string, bundle model.EvidenceBundle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a legal technology market research analyst. Analyze the company %q using the comprehensive data below and provide detailed information.\n\n", name)

	fmt.Fprintf(&b, "Company Name: %s\n\n", name)

	b.WriteString("=== SEARCH RESULTS ===\n")
	b.WriteString(capString(bundle.SearchText, promptSearchTextCap))
	b.WriteString("\n\n=== RECENT NEWS ===\n")
	for i, item := range bundle.News {
		if i >= mergedNewsItems {
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", item.Title, item.Description)
	}

	b.WriteString("\n=== TECH COMMUNITY DISCUSSIONS ===\n")
	for i, d := range bundle.Discussions {
		if i >= mergedDiscussions {
			break
		}
		fmt.Fprintf(&b, "- HN: %s (%d points)\n", d.Title, d.Points)
	}

	b.WriteString("\n=== CORPORATE DATA ===\n")
	if !bundle.Registry.Empty() {
		fmt.Fprintf(&b, "Registered: %s\n", bundle.Registry.RegisteredName)
		fmt.Fprintf(&b, "Jurisdiction: %s\n", bundle.Registry.Jurisdiction)
		fmt.Fprintf(&b, "Status: %s\n", bundle.Registry.Status)
	}

	b.WriteString("\n=== CODE ACTIVITY ===\n")
	if bundle.Code.RepoCount > 0 {
		fmt.Fprintf(&b, "Repositories: %d\n", bundle.Code.RepoCount)
		fmt.Fprintf(&b, "Total Stars: %d\n", bundle.Code.TotalStars)
		fmt.Fprintf(&b, "Languages: %s\n", strings.Join(bundle.Code.Languages, ", "))
	}

	fmt.Fprintf(&b, "\nWebsite: %s\n\n", bundle.Website)

	b.WriteString(`Provide a JSON response with these fields:
{
    "ai_powered_legal_chatbot": "Yes/No/Limited - specify AI chatbot capabilities",
    "stage": "Pre-seed/Seed/Series A/B/C/Growth/Established",
    "multilingual_support": "Languages supported (German/English/etc)",
    "mobile_web_accessibility": "Mobile app/Web/Both availability",
    "free_tier": "Yes/No - free offering details",
    "subscription_based": "Yes/No - subscription model",
    "target_audience": "Law firms/Individuals/Corporates/SMEs",
    "coverage": "Geographic coverage (Germany/Europe/Global)",
    "founding_team_rating": "1-5 rating based on experience",
    "direct_indirect": "Direct/Indirect competitor to German legal chatbot",
    "comment": "Key insights and competitive positioning including recent news and tech community sentiment"
}

Focus on accuracy and German legal tech market relevance. Use the news, discussions, and corporate data to provide current insights. Only respond with valid JSON.`)

	return b.String()
}
