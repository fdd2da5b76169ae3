// Package github wraps the GitHub search API (unauthenticated tier).
package github

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

const defaultBaseURL = "https://api.github.com"

// Client performs GitHub repository and organization searches.
type Client interface {
	SearchRepositories(ctx context.Context, query string, limit int) (*RepoSearchResponse, error)
	SearchOrganizations(ctx context.Context, query string, limit int) (*UserSearchResponse, error)
}

// RepoSearchResponse is the response from GET /search/repositories.
type RepoSearchResponse struct {
	TotalCount int    `json:"total_count"`
	Items      []Repo `json:"items"`
}

// Repo is a single repository result.
type Repo struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Language    string `json:"language"`
	HTMLURL     string `json:"html_url"`
	UpdatedAt   string `json:"updated_at"`
	Owner       Owner  `json:"owner"`
}

// Owner is the user or organization owning a repository.
type Owner struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}

// UserSearchResponse is the response from GET /search/users.
type UserSearchResponse struct {
	Items []User `json:"items"`
}

// User is a single user/organization result.
type User struct {
	Login   string `json:"login"`
	Type    string `json:"type"`
	HTMLURL string `json:"html_url"`
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

// NewClient creates a GitHub search client.
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

func (c *httpClient) SearchRepositories(ctx context.Context, query string, limit int) (*RepoSearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(limit))

	var result RepoSearchResponse
	if err := c.get(ctx, "/search/repositories?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) SearchOrganizations(ctx context.Context, query string, limit int) (*UserSearchResponse, error) {
	params := url.Values{}
	params.Set("q", query+" type:org")
	params.Set("per_page", strconv.Itoa(limit))

	var result UserSearchResponse
	if err := c.get(ctx, "/search/users?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return eris.Wrap(err, "github: create request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "github: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "github: read response")
	}

	// GitHub signals search rate limiting with 403 as well as 429.
	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		return resilience.NewStatusError("github", http.StatusTooManyRequests, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return resilience.NewStatusError("github", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "github: unmarshal response")
	}
	return nil
}
