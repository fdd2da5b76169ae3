package research

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/oratio-tech/competitor-cli/internal/model"
	"github.com/oratio-tech/competitor-cli/internal/resilience"
	"github.com/oratio-tech/competitor-cli/pkg/duckduckgo"
	"github.com/oratio-tech/competitor-cli/pkg/github"
	"github.com/oratio-tech/competitor-cli/pkg/gnews"
	"github.com/oratio-tech/competitor-cli/pkg/hackernews"
	"github.com/oratio-tech/competitor-cli/pkg/opencorporates"
)

// Per-source result limits.
const (
	newsLimit       = 5
	discussionLimit = 5
	registryLimit   = 3
	repoLimit       = 5
	orgLimit        = 3
)

// Collector fans one company name out to every source adapter and gathers
// the fragments. Every adapter call is fire-and-continue: a failure is
// logged, its fragment stays zero, and the remaining adapters still run.
//
// Rate limiters are shared across companies, so a parallel research run
// still respects each source's budget globally.
type Collector struct {
	search      duckduckgo.Client
	news        gnews.Client
	discussions hackernews.Client
	registry    opencorporates.Client
	code        github.Client

	policy resilience.Policy

	searchLimiter   *rate.Limiter
	newsLimiter     *rate.Limiter
	forumLimiter    *rate.Limiter
	registryLimiter *rate.Limiter
	codeLimiter     *rate.Limiter

	searchTimeout   time.Duration
	registryTimeout time.Duration
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p resilience.Policy) CollectorOption {
	return func(c *Collector) {
		c.policy = p
	}
}

// WithTimeouts sets the per-call timeouts for search-style and
// registry-style sources.
func WithTimeouts(search, registry time.Duration) CollectorOption {
	return func(c *Collector) {
		c.searchTimeout = search
		c.registryTimeout = registry
	}
}

// NewCollector wires the source adapters into one collector.
func NewCollector(
	search duckduckgo.Client,
	news gnews.Client,
	discussions hackernews.Client,
	registry opencorporates.Client,
	code github.Client,
	opts ...CollectorOption,
) *Collector {
	c := &Collector{
		search:      search,
		news:        news,
		discussions: discussions,
		registry:    registry,
		code:        code,
		policy:      resilience.DefaultPolicy(),

		searchLimiter:   rate.NewLimiter(rate.Limit(1), 1),
		newsLimiter:     rate.NewLimiter(rate.Every(2*time.Second), 1),
		forumLimiter:    rate.NewLimiter(rate.Limit(1), 1),
		registryLimiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		codeLimiter:     rate.NewLimiter(rate.Limit(10.0/60.0), 2),

		searchTimeout:   10 * time.Second,
		registryTimeout: 15 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Collect gathers fragments for one company. It never returns an error:
// a failed source contributes its zero fragment.
func (c *Collector) Collect(ctx context.Context, name string) Fragments {
	var f Fragments

	if website, text, err := c.fetchSearch(ctx, name); err != nil {
		logFragmentFailure("duckduckgo", name, err)
	} else {
		f.Website = website
		f.SearchText = text
	}

	if news, err := c.fetchNews(ctx, name); err != nil {
		logFragmentFailure("gnews", name, err)
	} else {
		f.News = news
	}

	if discussions, err := c.fetchDiscussions(ctx, name); err != nil {
		logFragmentFailure("hackernews", name, err)
	} else {
		f.Discussions = discussions
	}

	if record, err := c.fetchRegistry(ctx, name); err != nil {
		logFragmentFailure("opencorporates", name, err)
	} else {
		f.Registry = record
	}

	if activity, err := c.fetchCode(ctx, name); err != nil {
		logFragmentFailure("github", name, err)
	} else {
		f.Code = activity
	}

	return f
}

func logFragmentFailure(source, company string, err error) {
	zap.L().Warn("source fragment unavailable",
		zap.String("source", source),
		zap.String("company", company),
		zap.Error(err),
	)
}

// fetchSearch queries the instant-answer API for a website and descriptive
// text. The website comes from the infobox; the text from abstract,
// definition, and the first related topics.
func (c *Collector) fetchSearch(ctx context.Context, name string) (string, string, error) {
	if err := c.searchLimiter.Wait(ctx); err != nil {
		return "", "", err
	}

	answer, err := resilience.Retry(ctx, c.policy, "duckduckgo",
		func(ctx context.Context) (*duckduckgo.Answer, error) {
			ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
			defer cancel()
			return c.search.InstantAnswer(ctx, name+" legal tech")
		})
	if err != nil {
		return "", "", err
	}

	var website string
	for _, item := range answer.Infobox.Content {
		switch strings.ToLower(item.Label) {
		case "website", "official website", "url":
			website = item.Value
		}
		if website != "" {
			break
		}
	}

	var text strings.Builder
	text.WriteString(answer.Abstract)
	if answer.Definition != "" {
		text.WriteString(" ")
		text.WriteString(answer.Definition)
	}
	var related strings.Builder
	for i, topic := range answer.RelatedTopics {
		if i >= 3 {
			break
		}
		related.WriteString(" ")
		related.WriteString(topic.Text)
	}
	text.WriteString(capString(related.String(), 500))

	return website, text.String(), nil
}

func (c *Collector) fetchNews(ctx context.Context, name string) ([]model.NewsItem, error) {
	if err := c.newsLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	articles, err := resilience.Retry(ctx, c.policy, "gnews",
		func(ctx context.Context) ([]gnews.Article, error) {
			ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
			defer cancel()
			return c.news.Search(ctx, name+" legal tech startup funding", newsLimit)
		})
	if err != nil {
		return nil, err
	}

	items := make([]model.NewsItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, model.NewsItem{
			Title:       a.Title,
			Link:        a.Link,
			Published:   a.Published,
			Description: a.Description,
			Source:      a.Source,
		})
	}
	return items, nil
}

func (c *Collector) fetchDiscussions(ctx context.Context, name string) ([]model.Discussion, error) {
	if err := c.forumLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := resilience.Retry(ctx, c.policy, "hackernews",
		func(ctx context.Context) (*hackernews.SearchResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
			defer cancel()
			return c.discussions.SearchStories(ctx, name, discussionLimit)
		})
	if err != nil {
		return nil, err
	}

	discussions := make([]model.Discussion, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		discussions = append(discussions, model.Discussion{
			Title:    hit.Title,
			URL:      hit.URL,
			Points:   hit.Points,
			Comments: hit.NumComments,
			Text:     capString(hit.StoryText, discussionItemCap),
		})
	}
	return discussions, nil
}

// fetchRegistry returns the first registration record among the top matches
// whose name plausibly belongs to the queried company.
func (c *Collector) fetchRegistry(ctx context.Context, name string) (model.RegistryRecord, error) {
	if err := c.registryLimiter.Wait(ctx); err != nil {
		return model.RegistryRecord{}, err
	}

	resp, err := resilience.Retry(ctx, c.policy, "opencorporates",
		func(ctx context.Context) (*opencorporates.SearchResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, c.registryTimeout)
			defer cancel()
			return c.registry.SearchCompanies(ctx, name, registryLimit)
		})
	if err != nil {
		return model.RegistryRecord{}, err
	}

	for i, entry := range resp.Results.Companies {
		if i >= 2 {
			break
		}
		co := entry.Company
		if !NamesMatch(name, co.Name) {
			continue
		}
		return model.RegistryRecord{
			RegisteredName:    co.Name,
			Jurisdiction:      co.JurisdictionCode,
			IncorporationDate: co.IncorporationDate,
			CompanyType:       co.CompanyType,
			Status:            co.CurrentStatus,
			Address:           co.RegisteredAddress,
		}, nil
	}

	return model.RegistryRecord{}, nil
}

func (c *Collector) fetchCode(ctx context.Context, name string) (model.CodeActivity, error) {
	if err := c.codeLimiter.Wait(ctx); err != nil {
		return model.CodeActivity{}, err
	}

	repos, err := resilience.Retry(ctx, c.policy, "github",
		func(ctx context.Context) (*github.RepoSearchResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
			defer cancel()
			return c.code.SearchRepositories(ctx, name, repoLimit)
		})
	if err != nil {
		return model.CodeActivity{}, err
	}

	activity := model.CodeActivity{RepoCount: repos.TotalCount}
	for _, repo := range repos.Items {
		activity.TotalStars += repo.Stars
		if repo.Language != "" && !contains(activity.Languages, repo.Language) {
			activity.Languages = append(activity.Languages, repo.Language)
		}
		activity.Repos = append(activity.Repos, model.CodeRepo{
			Name:        repo.Name,
			Description: capString(repo.Description, 100),
			Stars:       repo.Stars,
			Language:    repo.Language,
			URL:         repo.HTMLURL,
		})
	}

	if err := c.codeLimiter.Wait(ctx); err != nil {
		return activity, nil
	}
	orgs, err := resilience.Retry(ctx, c.policy, "github",
		func(ctx context.Context) (*github.UserSearchResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
			defer cancel()
			return c.code.SearchOrganizations(ctx, name, orgLimit)
		})
	if err != nil {
		// repository data alone is still a useful fragment
		logFragmentFailure("github", name, err)
		return activity, nil
	}

	for _, org := range orgs.Items {
		if NamesMatch(name, org.Login) {
			activity.OrgURL = org.HTMLURL
			break
		}
	}

	return activity, nil
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
