package research

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/oratio-tech/competitor-cli/pkg/duckduckgo"
	"github.com/oratio-tech/competitor-cli/pkg/github"
	"github.com/oratio-tech/competitor-cli/pkg/gnews"
	"github.com/oratio-tech/competitor-cli/pkg/hackernews"
	"github.com/oratio-tech/competitor-cli/pkg/opencorporates"
)

type mockSearchClient struct {
	answer *duckduckgo.Answer
	err    error
}

func (m *mockSearchClient) InstantAnswer(_ context.Context, _ string) (*duckduckgo.Answer, error) {
	return m.answer, m.err
}

type mockNewsClient struct {
	articles []gnews.Article
	err      error
}

func (m *mockNewsClient) Search(_ context.Context, _ string, _ int) ([]gnews.Article, error) {
	return m.articles, m.err
}

type mockForumClient struct {
	resp *hackernews.SearchResponse
	err  error
}

func (m *mockForumClient) SearchStories(_ context.Context, _ string, _ int) (*hackernews.SearchResponse, error) {
	return m.resp, m.err
}

type mockRegistryClient struct {
	resp *opencorporates.SearchResponse
	err  error
}

func (m *mockRegistryClient) SearchCompanies(_ context.Context, _ string, _ int) (*opencorporates.SearchResponse, error) {
	return m.resp, m.err
}

type mockCodeClient struct {
	repos *github.RepoSearchResponse
	orgs  *github.UserSearchResponse
	err   error
}

func (m *mockCodeClient) SearchRepositories(_ context.Context, _ string, _ int) (*github.RepoSearchResponse, error) {
	return m.repos, m.err
}

func (m *mockCodeClient) SearchOrganizations(_ context.Context, _ string, _ int) (*github.UserSearchResponse, error) {
	return m.orgs, m.err
}

func newTestCollector(
	search duckduckgo.Client,
	news gnews.Client,
	forum hackernews.Client,
	registry opencorporates.Client,
	code github.Client,
) *Collector {
	c := NewCollector(search, news, forum, registry, code)
	unlimited := rate.NewLimiter(rate.Inf, 1)
	c.searchLimiter = unlimited
	c.newsLimiter = unlimited
	c.forumLimiter = unlimited
	c.registryLimiter = unlimited
	c.codeLimiter = unlimited
	return c
}

func healthyMocks() (*mockSearchClient, *mockNewsClient, *mockForumClient, *mockRegistryClient, *mockCodeClient) {
	search := &mockSearchClient{answer: &duckduckgo.Answer{
		Abstract: "Harvey builds AI for legal work.",
		Infobox: duckduckgo.Infobox{Content: []duckduckgo.InfoboxItem{
			{Label: "Website", Value: "https://harvey.ai"},
		}},
	}}
	news := &mockNewsClient{articles: []gnews.Article{
		{Title: "Harvey raises Series B", Description: "funding round"},
	}}
	forum := &mockForumClient{resp: &hackernews.SearchResponse{Hits: []hackernews.Hit{
		{Title: "Harvey AI discussion", Points: 120, NumComments: 40},
	}}}
	registry := &mockRegistryClient{resp: &opencorporates.SearchResponse{
		Results: opencorporates.Results{Companies: []opencorporates.CompanyEntry{
			{Company: opencorporates.Company{
				Name:              "Harvey AI Inc",
				JurisdictionCode:  "us_de",
				IncorporationDate: "2022-01-15",
			}},
		}},
	}}
	code := &mockCodeClient{
		repos: &github.RepoSearchResponse{TotalCount: 2, Items: []github.Repo{
			{Name: "harvey-sdk", Stars: 80, Language: "Python"},
			{Name: "harvey-cli", Stars: 20, Language: "Go"},
		}},
		orgs: &github.UserSearchResponse{Items: []github.User{
			{Login: "harvey-ai", HTMLURL: "https://github.com/harvey-ai"},
		}},
	}
	return search, news, forum, registry, code
}

func TestCollectGathersAllFragments(t *testing.T) {
	c := newTestCollector(newClients(healthyMocks()))

	f := c.Collect(context.Background(), "Harvey AI")

	assert.Equal(t, "https://harvey.ai", f.Website)
	assert.Contains(t, f.SearchText, "Harvey builds AI")
	require.Len(t, f.News, 1)
	assert.Equal(t, "Harvey raises Series B", f.News[0].Title)
	require.Len(t, f.Discussions, 1)
	assert.Equal(t, 120, f.Discussions[0].Points)
	assert.Equal(t, "Harvey AI Inc", f.Registry.RegisteredName)
	assert.Equal(t, 2, f.Code.RepoCount)
	assert.Equal(t, 100, f.Code.TotalStars)
	assert.ElementsMatch(t, []string{"Python", "Go"}, f.Code.Languages)
	assert.Equal(t, "https://github.com/harvey-ai", f.Code.OrgURL)
}

func TestCollectIsolatesSourceFailures(t *testing.T) {
	search, news, forum, registry, code := healthyMocks()
	news.err = errors.New("feed unreachable")
	registry.err = errors.New("registry down")

	c := newTestCollector(newClients(search, news, forum, registry, code))
	f := c.Collect(context.Background(), "Harvey AI")

	// failed sources contribute their zero fragment
	assert.Empty(t, f.News)
	assert.True(t, f.Registry.Empty())

	// the rest still arrive
	assert.Equal(t, "https://harvey.ai", f.Website)
	assert.Len(t, f.Discussions, 1)
	assert.Equal(t, 2, f.Code.RepoCount)
}

func TestCollectAllSourcesDownStillReturns(t *testing.T) {
	boom := errors.New("down")
	c := newTestCollector(
		&mockSearchClient{err: boom},
		&mockNewsClient{err: boom},
		&mockForumClient{err: boom},
		&mockRegistryClient{err: boom},
		&mockCodeClient{err: boom},
	)

	f := c.Collect(context.Background(), "Harvey AI")
	assert.Equal(t, Fragments{}, f)
}

func TestFetchRegistrySkipsNonMatches(t *testing.T) {
	search, news, forum, registry, code := healthyMocks()
	registry.resp = &opencorporates.SearchResponse{
		Results: opencorporates.Results{Companies: []opencorporates.CompanyEntry{
			{Company: opencorporates.Company{Name: "Unrelated Holdings International Corp"}},
			{Company: opencorporates.Company{Name: "Harvey AI Inc", JurisdictionCode: "us_de"}},
		}},
	}

	c := newTestCollector(newClients(search, news, forum, registry, code))
	f := c.Collect(context.Background(), "Harvey AI")
	assert.Equal(t, "Harvey AI Inc", f.Registry.RegisteredName)
}

// newClients adapts healthyMocks' return tuple to the collector signature.
func newClients(
	search *mockSearchClient,
	news *mockNewsClient,
	forum *mockForumClient,
	registry *mockRegistryClient,
	code *mockCodeClient,
) (duckduckgo.Client, gnews.Client, hackernews.Client, opencorporates.Client, github.Client) {
	return search, news, forum, registry, code
}
