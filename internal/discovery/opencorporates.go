package discovery

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/oratio-tech/competitor-cli/internal/model"
	"github.com/oratio-tech/competitor-cli/pkg/opencorporates"
)

var registrySearchTerms = []string{
	"legal technology",
	"legal AI",
	"law technology",
	"legal software",
	"contract automation",
	"legal services AI",
	"legal assistant",
}

var (
	registryLegalTerms = []string{"legal", "law", "lawyer", "attorney", "contract"}
	registryTechTerms  = []string{"ai", "technology", "tech", "software", "digital", "automation"}
)

// RegistrySource discovers legally registered companies whose names combine
// a legal term with a technology term.
type RegistrySource struct {
	client   opencorporates.Client
	limiter  *rate.Limiter
	perQuery int
}

// NewRegistrySource creates the corporate-registry discovery source.
func NewRegistrySource(client opencorporates.Client, perQuery int) *RegistrySource {
	return &RegistrySource{
		client:   client,
		limiter:  rate.NewLimiter(rate.Every(2 * time.Second), 1),
		perQuery: perQuery,
	}
}

func (s *RegistrySource) Name() string { return "opencorporates" }

func (s *RegistrySource) Discover(ctx context.Context) ([]model.Candidate, error) {
	var candidates []model.Candidate

	for _, term := range registrySearchTerms {
		if err := s.limiter.Wait(ctx); err != nil {
			return candidates, err
		}

		resp, err := s.client.SearchCompanies(ctx, term, s.perQuery)
		if err != nil {
			zap.L().Warn("registry query failed",
				zap.String("query", term),
				zap.Error(err),
			)
			continue
		}

		for _, entry := range resp.Results.Companies {
			co := entry.Company
			if !isLegalTechCompanyName(co.Name) {
				continue
			}

			candidates = append(candidates, model.Candidate{
				Name:              co.Name,
				Source:            "OpenCorporates API",
				Category:          "legal_tech_registered",
				Confidence:        model.ConfidenceHigh,
				Jurisdiction:      co.JurisdictionCode,
				CompanyType:       co.CompanyType,
				Status:            co.CurrentStatus,
				IncorporationDate: co.IncorporationDate,
			})
		}
	}

	return candidates, nil
}

// isLegalTechCompanyName requires at least one legal term and one tech term
// in the registered name, plus a minimum length to weed out noise.
func isLegalTechCompanyName(name string) bool {
	lower := strings.ToLower(name)
	return containsAny(lower, registryLegalTerms) &&
		containsAny(lower, registryTechTerms) &&
		len(lower) > 5
}
