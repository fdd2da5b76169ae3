package research

import (
	"regexp"
	"strings"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

// FundingSignal is the funding detector's output. Empty fields mean no
// funding language was found.
type FundingSignal struct {
	FundraisingStage string
	Stage            string
}

// fundingStages maps funding keywords to (fundraising stage, company stage)
// in detection priority order.
var fundingStages = []struct {
	keyword          string
	fundraisingStage string
	stage            string
}{
	{"series a", "Series A", "Growth"},
	{"series b", "Series B", "Growth"},
	{"series c", "Series C", "Established"},
	// pre-seed must precede seed, which matches as a substring of it.
	{"pre-seed", "Pre-seed", "Startup"},
	{"seed", "Seed", "Startup"},
}

// DetectFunding scans the bundle's text for funding-round language.
func DetectFunding(bundle model.EvidenceBundle) FundingSignal {
	text := strings.ToLower(bundleText(bundle))

	for _, fs := range fundingStages {
		if strings.Contains(text, fs.keyword) {
			return FundingSignal{
				FundraisingStage: fs.fundraisingStage,
				Stage:            fs.stage,
			}
		}
	}
	return FundingSignal{}
}

var partnershipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)partnership with (\w+)`),
	regexp.MustCompile(`(?i)integrates with (\w+)`),
	regexp.MustCompile(`(?i)partners include (\w+)`),
}

// DetectPartnerships extracts partner names mentioned in the bundle's text,
// up to three per pattern.
func DetectPartnerships(bundle model.EvidenceBundle) string {
	text := bundleText(bundle)

	var partners []string
	for _, pattern := range partnershipPatterns {
		matches := pattern.FindAllStringSubmatch(text, 3)
		for _, m := range matches {
			partners = append(partners, m[1])
		}
	}

	return strings.Join(partners, ", ")
}

var userMetricPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+(?:,\d{3})*)\s+users`),
	regexp.MustCompile(`(\d+(?:,\d{3})*)\s+customers`),
	regexp.MustCompile(`(\d+)%\s+growth`),
}

// DetectUserMetrics extracts user-count or growth figures from the bundle's
// text. The first pattern that matches wins, capped at two figures.
func DetectUserMetrics(bundle model.EvidenceBundle) string {
	text := bundleText(bundle)

	for _, pattern := range userMetricPatterns {
		matches := pattern.FindAllStringSubmatch(text, 2)
		if len(matches) == 0 {
			continue
		}
		figures := make([]string, 0, len(matches))
		for _, m := range matches {
			figures = append(figures, m[1])
		}
		return strings.Join(figures, ", ")
	}
	return ""
}

// bundleText concatenates the bundle's textual sources in merge order.
func bundleText(bundle model.EvidenceBundle) string {
	var b strings.Builder
	b.WriteString(bundle.SearchText)
	for _, item := range bundle.News {
		b.WriteString(" ")
		b.WriteString(item.Title)
		b.WriteString(" ")
		b.WriteString(item.Description)
	}
	for _, d := range bundle.Discussions {
		b.WriteString(" ")
		b.WriteString(d.Title)
		b.WriteString(" ")
		b.WriteString(d.Text)
	}
	return b.String()
}
