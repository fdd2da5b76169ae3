package discovery

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

// SeedLists holds curated company names grouped the way they are discovered:
// general startup-database listings, the German legal-tech directory, and
// competitors known ahead of time.
type SeedLists struct {
	StartupDatabases []string `yaml:"startup_databases"`
	GermanLegalTech  []string `yaml:"german_legal_tech"`
	KnownCompetitors []string `yaml:"known_competitors"`
}

// DefaultSeeds returns the built-in curated lists used when no seed file is
// configured.
func DefaultSeeds() SeedLists {
	return SeedLists{
		StartupDatabases: []string{
			"Harvey AI", "CoCounsel", "DoNotPay", "LawGeex", "Luminance",
			"ROSS Intelligence", "Kira Systems", "Lex Machina", "Ironclad",
			"Contract Wrangler", "Legal Robot", "Evisort", "ContractPodAi",
			"Spellbook", "Robin AI", "Briefpoint", "Abel", "Gideon Legal",
			"Casetext", "Blue J Legal", "Eigen Technologies", "ThoughtRiver",
			"Seal Software", "Automata", "LawDroid", "Neota Logic",
			"Axiom Law", "Elevate Services", "Intapp", "iManage",
		},
		GermanLegalTech: []string{
			"LawPilots", "Rechtspanda", "Legal Tribune Online AI",
			"Kanzlei-Software.de AI", "Smartlaw", "Flightright",
			"SirionLabs", "Juve Patent", "Legal One", "Leverton",
			"Parashift", "Mindbridge AI", "Legartis", "Kiiac",
		},
		KnownCompetitors: []string{
			"ChatGPT (OpenAI)", "Claude (Anthropic)", "Gemini (Google)",
			"LegalZoom", "Rocket Lawyer", "Nolo", "LegalMatch",
			"Avvo", "Clio", "MyCase", "PracticePanther", "TimeSolv",
		},
	}
}

// LoadSeeds reads seed lists from a yaml file, falling back to the built-in
// defaults when the file does not exist.
func LoadSeeds(path string) (SeedLists, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Debug("seed file not found, using built-in lists",
				zap.String("path", path),
			)
			return DefaultSeeds(), nil
		}
		return SeedLists{}, eris.Wrap(err, "discovery: read seed file")
	}

	var seeds SeedLists
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return SeedLists{}, eris.Wrap(err, "discovery: parse seed file")
	}
	return seeds, nil
}

// SeedSource emits candidates from curated seed lists. It performs no I/O
// at discovery time.
type SeedSource struct {
	seeds SeedLists
}

// NewSeedSource creates a discovery source over the given seed lists.
func NewSeedSource(seeds SeedLists) *SeedSource {
	return &SeedSource{seeds: seeds}
}

func (s *SeedSource) Name() string { return "seed_lists" }

func (s *SeedSource) Discover(_ context.Context) ([]model.Candidate, error) {
	var candidates []model.Candidate

	for _, name := range s.seeds.StartupDatabases {
		candidates = append(candidates, model.Candidate{
			Name:       name,
			Source:     "Startup Database",
			Category:   "legal_tech",
			Confidence: model.ConfidenceHigh,
		})
	}
	for _, name := range s.seeds.GermanLegalTech {
		candidates = append(candidates, model.Candidate{
			Name:       name,
			Source:     "Legal Tech Directory",
			Category:   "german_legal_tech",
			Confidence: model.ConfidenceHigh,
		})
	}
	for _, name := range s.seeds.KnownCompetitors {
		candidates = append(candidates, model.Candidate{
			Name:       name,
			Source:     "Known Competitor",
			Category:   "direct_competitor",
			Confidence: model.ConfidenceHigh,
		})
	}

	return candidates, nil
}
