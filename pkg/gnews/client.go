// Package gnews wraps the Google News RSS search feed (no key required).
package gnews

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"
	"github.com/rotisserie/eris"

	"github.com/oratio-tech/competitor-cli/internal/resilience"
)

const defaultBaseURL = "https://news.google.com/rss"

// Client searches the Google News RSS feed.
type Client interface {
	Search(ctx context.Context, query string, limit int) ([]Article, error)
}

// Article is a single news result.
type Article struct {
	Title       string
	Link        string
	Published   string
	Description string
	Source      string
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default feed base URL.
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
	parser  *gofeed.Parser
}

// NewClient creates a Google News RSS client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		parser: gofeed.NewParser(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string, limit int) ([]Article, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "gnews: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "gnews: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, resilience.NewStatusError("gnews", resp.StatusCode, string(body))
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "gnews: parse feed")
	}

	articles := make([]Article, 0, limit)
	for _, item := range feed.Items {
		if len(articles) >= limit {
			break
		}
		a := Article{
			Title:       item.Title,
			Link:        item.Link,
			Published:   item.Published,
			Description: truncate(item.Description, 200),
			Source:      "Google News",
		}
		if item.Custom != nil {
			if src, ok := item.Custom["source"]; ok && src != "" {
				a.Source = src
			}
		}
		articles = append(articles, a)
	}

	return articles, nil
}

// truncate caps s at n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
