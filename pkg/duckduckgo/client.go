// Package duckduckgo wraps the DuckDuckGo Instant Answer API.
package duckduckgo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/oratio-tech/competitor-cli/internal/resilience"
)

const defaultBaseURL = "https://api.duckduckgo.com"

// Client performs DuckDuckGo Instant Answer lookups.
type Client interface {
	InstantAnswer(ctx context.Context, query string) (*Answer, error)
}

// Answer is the subset of the Instant Answer response the pipeline consumes.
type Answer struct {
	Abstract      string         `json:"Abstract"`
	AbstractURL   string         `json:"AbstractURL"`
	Definition    string         `json:"Definition"`
	Infobox       Infobox        `json:"Infobox"`
	RelatedTopics []RelatedTopic `json:"RelatedTopics"`
}

// Infobox holds structured facts about the queried entity.
type Infobox struct {
	Content []InfoboxItem `json:"content"`
}

// InfoboxItem is a single labeled fact in the infobox.
type InfoboxItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RelatedTopic is one related-topic entry. Nested topic groups carry an
// empty Text and are skipped by consumers.
type RelatedTopic struct {
	Text string `json:"Text"`
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

// NewClient creates a DuckDuckGo Instant Answer client. The API needs no key.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) InstantAnswer(ctx context.Context, query string) (*Answer, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resilience.NewStatusError("duckduckgo", resp.StatusCode, string(body))
	}

	var answer Answer
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, eris.Wrap(err, "duckduckgo: unmarshal response")
	}

	return &answer, nil
}
