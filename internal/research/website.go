package research

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

// WebsiteFacts are the attribute-level signals read directly off a company's
// own site. Empty fields mean the detector did not fire.
type WebsiteFacts struct {
	BusinessModel  string
	Pricing        string
	Product        string
	APIIntegration string
}

// WebsiteAnalyzer fetches a company site and runs keyword and pattern
// detectors over its plaintext.
type WebsiteAnalyzer struct {
	client *http.Client
}

// NewWebsiteAnalyzer creates an analyzer with the given fetch timeout.
func NewWebsiteAnalyzer(timeout time.Duration) *WebsiteAnalyzer {
	return &WebsiteAnalyzer{
		client: &http.Client{Timeout: timeout},
	}
}

var (
	pricingRe  = regexp.MustCompile(`€\d+|\$\d+|£\d+|\d+/month|\d+/year`)
	metaDescRe = regexp.MustCompile(`(?is)<meta[^>]+name=["']description["'][^>]+content=["']([^"']*)["']`)
	htmlTagRe  = regexp.MustCompile(`<[^>]+>`)
	scriptRe   = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
)

// Analyze fetches the site and extracts business model, pricing tokens,
// API/developer keywords, and the meta-description product summary.
func (w *WebsiteAnalyzer) Analyze(ctx context.Context, siteURL string) (WebsiteFacts, error) {
	var facts WebsiteFacts

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
	if err != nil {
		return facts, eris.Wrap(err, "website: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ResearchBot/1.0)")

	resp, err := w.client.Do(req)
	if err != nil {
		return facts, eris.Wrap(err, "website: fetch")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return facts, eris.Errorf("website: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return facts, eris.Wrap(err, "website: read body")
	}

	html := string(body)
	if m := metaDescRe.FindStringSubmatch(html); len(m) > 1 {
		facts.Product = capString(strings.TrimSpace(m[1]), 200)
	}

	text := strings.ToLower(pageText(html))

	switch {
	case containsAny(text, []string{"saas", "software as a service", "subscription"}):
		facts.BusinessModel = "SaaS"
	case containsAny(text, []string{"marketplace", "platform"}):
		facts.BusinessModel = "Platform"
	case containsAny(text, []string{"consulting", "services"}):
		facts.BusinessModel = "Services"
	}

	if matches := pricingRe.FindAllString(text, 3); len(matches) > 0 {
		facts.Pricing = strings.Join(matches, ", ")
	}

	if containsAny(text, []string{"api", "developer", "integration"}) {
		facts.APIIntegration = "Yes"
	}

	return facts, nil
}

// Apply copies the detected facts onto an attribute set, leaving fields the
// detectors did not fire on untouched.
func (f WebsiteFacts) Apply(attrs *model.Attributes) {
	if f.BusinessModel != "" {
		attrs.BusinessModel = f.BusinessModel
	}
	if f.Pricing != "" {
		attrs.Pricing = f.Pricing
	}
	if f.Product != "" {
		attrs.Product = f.Product
	}
	if f.APIIntegration != "" {
		attrs.APIIntegration = f.APIIntegration
	}
}

// pageText strips scripts, styles, and tags, leaving whitespace-separated
// plaintext.
func pageText(html string) string {
	html = scriptRe.ReplaceAllString(html, " ")
	html = htmlTagRe.ReplaceAllString(html, " ")
	return strings.Join(strings.Fields(html), " ")
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
