package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

func writeSummary(f *xlsx.File, profiles []model.Profile, now time.Time) error {
	sheet, err := f.AddSheet(summarySheet)
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}

	total := len(profiles)
	direct := countProfiles(profiles, isDirect)
	chatbots := countProfiles(profiles, hasAIChatbot)
	german := countProfiles(profiles, func(p model.Profile) bool {
		return strings.Contains(p.Coverage, "German")
	})

	addHeaderRow(sheet, []string{"Metric", "Value", "Percentage"})
	addMetricRow(sheet, "Total Companies Analyzed", total, "100%")
	addMetricRow(sheet, "Direct Competitors", direct, percentage(direct, total))
	addMetricRow(sheet, "Companies with AI Chatbots", chatbots, percentage(chatbots, total))
	addMetricRow(sheet, "Companies with German Coverage", german, percentage(german, total))

	sheet.AddRow()
	addTextRow(sheet, "Analysis Date", now.Format("2006-01-02 15:04"), "")
	addTextRow(sheet, "Data Source", "Multi-agent research system", "")
	addTextRow(sheet, "Research Method", "Web scraping + LLM analysis", "")
	return nil
}

func writePositioning(f *xlsx.File, profiles []model.Profile) error {
	sheet, err := f.AddSheet(positioningSheet)
	if err != nil {
		return eris.Wrap(err, "export: add positioning sheet")
	}

	addHeaderRow(sheet, []string{
		"Company", "AI Chatbot", "German Market",
		"Funding Stage", "Business Model", "Competitive Threat",
	})
	sheet.AddRow()

	for _, p := range profiles {
		if !isDirect(p) {
			continue
		}
		germanMarket := "No"
		if strings.Contains(p.Coverage, "German") {
			germanMarket = "Yes"
		}
		addTextRow(sheet,
			p.Competitor, p.AIChatbot, germanMarket,
			p.Stage, p.BusinessModel, AssessThreat(p))
	}
	return nil
}

func writeGermanMarket(f *xlsx.File, profiles []model.Profile) error {
	sheet, err := f.AddSheet(germanSheet)
	if err != nil {
		return eris.Wrap(err, "export: add german market sheet")
	}

	addHeaderRow(sheet, []string{
		"Company", "Coverage", "Multilingual Support",
		"AI Chatbot", "Pricing", "Oratio Relevance",
	})
	sheet.AddRow()

	for _, p := range profiles {
		if !servesGermanMarket(p) {
			continue
		}
		addTextRow(sheet,
			p.Competitor, p.Coverage, p.Multilingual,
			p.AIChatbot, p.Pricing, AssessRelevance(p))
	}
	return nil
}

// AssessThreat scores a profile's competitive threat from chatbot
// capability, German market presence, funding maturity and business-model
// similarity, and buckets the score into High, Medium or Low.
func AssessThreat(p model.Profile) string {
	score := 0
	if hasAIChatbot(p) {
		score += 3
	}
	if strings.Contains(strings.ToLower(p.Coverage), "german") {
		score += 3
	}
	stage := strings.ToLower(p.Stage)
	switch {
	case containsAny(stage, []string{"series c", "established"}):
		score += 2
	case containsAny(stage, []string{"series a", "series b"}):
		score++
	}
	if strings.Contains(strings.ToLower(p.BusinessModel), "saas") {
		score++
	}

	switch {
	case score >= 7:
		return "High"
	case score >= 4:
		return "Medium"
	default:
		return "Low"
	}
}

// AssessRelevance scores how closely a profile overlaps with a
// German-market consumer legal chatbot and buckets the score into
// Very High, High, Medium or Low.
func AssessRelevance(p model.Profile) string {
	score := 0
	if strings.Contains(strings.ToLower(p.Coverage), "german") {
		score += 3
	}
	if hasAIChatbot(p) {
		score += 3
	}
	if strings.Contains(strings.ToLower(p.TargetAudience), "individual") {
		score += 2
	}
	if strings.Contains(strings.ToLower(p.Multilingual), "german") {
		score++
	}

	switch {
	case score >= 7:
		return "Very High"
	case score >= 5:
		return "High"
	case score >= 3:
		return "Medium"
	default:
		return "Low"
	}
}

// isDirect matches "Direct" case-sensitively so that "Indirect" does not
// qualify.
func isDirect(p model.Profile) bool {
	return strings.Contains(p.DirectIndirect, "Direct")
}

func hasAIChatbot(p model.Profile) bool {
	return strings.Contains(strings.ToLower(p.AIChatbot), "yes")
}

func servesGermanMarket(p model.Profile) bool {
	return strings.Contains(strings.ToLower(p.Coverage), "german") ||
		strings.Contains(strings.ToLower(p.Multilingual), "german")
}

func countProfiles(profiles []model.Profile, match func(model.Profile) bool) int {
	n := 0
	for _, p := range profiles {
		if match(p) {
			n++
		}
	}
	return n
}

func percentage(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}

func addMetricRow(sheet *xlsx.Sheet, label string, value int, pct string) {
	row := sheet.AddRow()
	row.AddCell().Value = label
	row.AddCell().SetInt(value)
	row.AddCell().Value = pct
}

func addTextRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().Value = v
	}
}
