package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/oratio-tech/competitor-cli/pkg/github"
	"github.com/oratio-tech/competitor-cli/pkg/gnews"
	"github.com/oratio-tech/competitor-cli/pkg/hackernews"
	"github.com/oratio-tech/competitor-cli/pkg/opencorporates"
)

type mockGitHubClient struct {
	repos github.RepoSearchResponse
	calls int
}

func (m *mockGitHubClient) SearchRepositories(_ context.Context, _ string, _ int) (*github.RepoSearchResponse, error) {
	m.calls++
	return &m.repos, nil
}

func (m *mockGitHubClient) SearchOrganizations(_ context.Context, _ string, _ int) (*github.UserSearchResponse, error) {
	return &github.UserSearchResponse{}, nil
}

func TestGitHubSourceFiltersAndNames(t *testing.T) {
	client := &mockGitHubClient{repos: github.RepoSearchResponse{Items: []github.Repo{
		{
			Name:        "legal-assistant",
			Description: "AI legal assistant",
			Stars:       120,
			Owner:       github.Owner{Login: "lawcorp", Type: "Organization"},
		},
		{
			// below the star threshold
			Name:        "contract-parser",
			Description: "parses contracts",
			Stars:       3,
			Owner:       github.Owner{Login: "someone", Type: "User"},
		},
		{
			// user-owned but legal-named repo: repo name wins
			Name:        "law-bot",
			Description: "litigation helper",
			Stars:       40,
			Owner:       github.Owner{Login: "janedoe", Type: "User"},
		},
		{
			// not legal tech at all
			Name:        "game-engine",
			Description: "3d rendering",
			Stars:       900,
			Owner:       github.Owner{Login: "gamer", Type: "Organization"},
		},
	}}}

	src := NewGitHubSource(client, 20, 5)
	src.limiter = rate.NewLimiter(rate.Inf, 1)
	candidates, err := src.Discover(context.Background())
	require.NoError(t, err)

	// one candidate set per query; dedupe happens downstream
	require.Len(t, candidates, 2*len(githubQueries))
	assert.Equal(t, "lawcorp", candidates[0].Name)
	assert.Equal(t, 120, candidates[0].Stars)
	assert.Equal(t, "law-bot", candidates[1].Name)
	assert.Equal(t, "GitHub API", candidates[0].Source)
}

type mockRegistryClient struct {
	resp opencorporates.SearchResponse
}

func (m *mockRegistryClient) SearchCompanies(_ context.Context, _ string, _ int) (*opencorporates.SearchResponse, error) {
	return &m.resp, nil
}

func TestRegistrySourceFiltersNames(t *testing.T) {
	client := &mockRegistryClient{resp: opencorporates.SearchResponse{
		Results: opencorporates.Results{Companies: []opencorporates.CompanyEntry{
			{Company: opencorporates.Company{
				Name:              "Legal AI Technologies GmbH",
				JurisdictionCode:  "de",
				IncorporationDate: "2019-03-01",
			}},
			{Company: opencorporates.Company{Name: "Bakery Deluxe Ltd"}},
			{Company: opencorporates.Company{Name: "LawAI"}}, // too short
		}},
	}}

	src := NewRegistrySource(client, 30)
	src.limiter = rate.NewLimiter(rate.Inf, 1)
	candidates, err := src.Discover(context.Background())
	require.NoError(t, err)

	require.Len(t, candidates, len(registrySearchTerms))
	assert.Equal(t, "Legal AI Technologies GmbH", candidates[0].Name)
	assert.Equal(t, "de", candidates[0].Jurisdiction)
	assert.Equal(t, "2019-03-01", candidates[0].IncorporationDate)
}

func TestIsLegalTechCompanyName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Legal AI Technologies GmbH", true},
		{"Law Software Inc", true},
		{"Bakery Deluxe Ltd", false},
		{"Legal Advisors LLP", false}, // legal but no tech term
		{"LawAI", false},              // too short
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isLegalTechCompanyName(tt.name), tt.name)
	}
}

func TestExtractCompanyNames(t *testing.T) {
	articles := []gnews.Article{
		{Title: "Harvey AI raises $80M for legal research"},
		{Title: "Startup Spellbook raises Series A"},
		{Title: "the and with for"},
	}

	names := extractCompanyNames(articles)
	assert.Contains(t, names, "Harvey")
	assert.Contains(t, names, "Startup Spellbook")
	for _, n := range names {
		assert.True(t, isPlausibleCompanyName(n))
	}
}

type mockForumClient struct {
	resp hackernews.SearchResponse
}

func (m *mockForumClient) SearchStories(_ context.Context, _ string, _ int) (*hackernews.SearchResponse, error) {
	return &m.resp, nil
}

func TestForumSourceCarriesVotes(t *testing.T) {
	client := &mockForumClient{resp: hackernews.SearchResponse{Hits: []hackernews.Hit{
		{Title: "Show HN: Briefcase – AI paralegal for small firms", Points: 240},
		{Title: "Launch HN: LexBot (YC W25) legal chatbot", Points: 80},
		{Title: "Ask HN: best legal research tools?", Points: 55}, // not a launch post
	}}}

	src := NewForumSource(client, 10)
	src.limiter = rate.NewLimiter(rate.Inf, 1)
	candidates, err := src.Discover(context.Background())
	require.NoError(t, err)

	require.Len(t, candidates, 2*len(forumQueries))
	assert.Equal(t, "Briefcase", candidates[0].Name)
	assert.Equal(t, 240, candidates[0].Votes)
	assert.Equal(t, "Hacker News", candidates[0].Source)
	assert.Equal(t, "LexBot", candidates[1].Name)
	assert.Equal(t, 80, candidates[1].Votes)
}

// Launch-post points feed the community-popularity confidence bonus.
func TestForumVotesRaiseConfidence(t *testing.T) {
	client := &mockForumClient{resp: hackernews.SearchResponse{Hits: []hackernews.Hit{
		{Title: "Show HN: Briefcase – AI paralegal chatbot", Points: 240},
	}}}

	src := NewForumSource(client, 10)
	src.limiter = rate.NewLimiter(rate.Inf, 1)
	candidates, err := src.Discover(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	popular := candidates[0]
	Classify(&popular)

	quiet := candidates[0]
	quiet.Votes = 0
	Classify(&quiet)

	assert.True(t, popular.Confidence.AtLeast(quiet.Confidence))
	assert.NotEqual(t, popular.Confidence, quiet.Confidence)
}

func TestLaunchName(t *testing.T) {
	tests := []struct {
		title string
		want  string
		ok    bool
	}{
		{"Show HN: Briefcase – AI paralegal", "Briefcase", true},
		{"Launch HN: LexBot (YC W25)", "LexBot", true},
		{"Show HN: Contract review with GPT", "Contract review with GPT", true},
		{"Ask HN: favorite legal tools?", "", false},
		{"Show HN: AI", "", false}, // too short after extraction
	}

	for _, tt := range tests {
		got, ok := launchName(tt.title)
		assert.Equal(t, tt.ok, ok, tt.title)
		assert.Equal(t, tt.want, got, tt.title)
	}
}

func TestIsPlausibleCompanyName(t *testing.T) {
	assert.False(t, isPlausibleCompanyName("AI"))
	assert.False(t, isPlausibleCompanyName("Legal"))
	assert.False(t, isPlausibleCompanyName("Technology"))
	assert.True(t, isPlausibleCompanyName("Harvey AI"))
}
