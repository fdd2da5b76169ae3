// Package opencorporates wraps the OpenCorporates company search API
// (free tier, no key required for basic search).
package opencorporates

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/oratio-tech/competitor-cli/internal/resilience"
)

const defaultBaseURL = "https://api.opencorporates.com/v0.4"

// Client searches corporate registration records.
type Client interface {
	SearchCompanies(ctx context.Context, query string, limit int) (*SearchResponse, error)
}

// SearchResponse is the response from GET /companies/search.
type SearchResponse struct {
	Results Results `json:"results"`
}

// Results holds the company list within a search response.
type Results struct {
	Companies []CompanyEntry `json:"companies"`
}

// CompanyEntry wraps a single company record.
type CompanyEntry struct {
	Company Company `json:"company"`
}

// Company is a corporate registration record.
type Company struct {
	Name              string `json:"name"`
	JurisdictionCode  string `json:"jurisdiction_code"`
	IncorporationDate string `json:"incorporation_date"`
	CompanyType       string `json:"company_type"`
	CurrentStatus     string `json:"current_status"`
	RegisteredAddress string `json:"registered_address_in_full"`
	OpenCorporatesURL string `json:"opencorporates_url"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an OpenCorporates search client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) SearchCompanies(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("per_page", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/companies/search?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "opencorporates: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "opencorporates: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "opencorporates: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resilience.NewStatusError("opencorporates", resp.StatusCode, string(body))
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "opencorporates: unmarshal response")
	}

	return &result, nil
}
