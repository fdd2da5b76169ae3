package discovery

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/oratio-tech/competitor-cli/internal/model"
	"github.com/oratio-tech/competitor-cli/pkg/github"
)

var githubQueries = []string{
	"legal tech AI",
	"legal assistant",
	"contract analysis",
	"legal automation",
	"law AI",
	"legal chatbot",
	"paralegal AI",
	"legal document processing",
	"compliance automation",
}

var legalRepoKeywords = []string{
	"legal", "law", "lawyer", "attorney", "contract", "litigation",
	"compliance", "paralegal", "court", "jurisdiction", "statute",
	"regulation", "legal-tech", "lawtech", "legal-ai",
}

// GitHubSource discovers companies behind open-source legal-tech
// repositories. Organization owners are preferred as the company name;
// otherwise the repository name is used when it is itself legal-flavored.
type GitHubSource struct {
	client   github.Client
	limiter  *rate.Limiter
	perQuery int
	minStars int
}

// NewGitHubSource creates the GitHub discovery source. minStars filters out
// toy repositories.
func NewGitHubSource(client github.Client, perQuery, minStars int) *GitHubSource {
	return &GitHubSource{
		client: client,
		// unauthenticated search allows 10 requests/minute
		limiter:  rate.NewLimiter(rate.Limit(10.0/60.0), 1),
		perQuery: perQuery,
		minStars: minStars,
	}
}

func (s *GitHubSource) Name() string { return "github" }

func (s *GitHubSource) Discover(ctx context.Context) ([]model.Candidate, error) {
	var candidates []model.Candidate

	for _, query := range githubQueries {
		if err := s.limiter.Wait(ctx); err != nil {
			return candidates, err
		}

		resp, err := s.client.SearchRepositories(ctx, query, s.perQuery)
		if err != nil {
			zap.L().Warn("github query failed",
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}

		for _, repo := range resp.Items {
			if !s.isLegalTechRepo(repo) {
				continue
			}

			name := repo.Owner.Login
			if repo.Owner.Type != "Organization" {
				lower := strings.ToLower(repo.Name)
				if strings.Contains(lower, "legal") || strings.Contains(lower, "law") {
					name = repo.Name
				}
			}

			candidates = append(candidates, model.Candidate{
				Name:        name,
				Source:      "GitHub API",
				Category:    "legal_tech_github",
				Confidence:  model.ConfidenceMedium,
				Description: repo.Description,
				Stars:       repo.Stars,
				Forks:       repo.Forks,
				RepoURL:     repo.HTMLURL,
			})
		}
	}

	return candidates, nil
}

func (s *GitHubSource) isLegalTechRepo(repo github.Repo) bool {
	text := strings.ToLower(repo.Name + " " + repo.Description)
	return containsAny(text, legalRepoKeywords) && repo.Stars > s.minStars
}
