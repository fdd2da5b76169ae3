package discovery

import "github.com/oratio-tech/competitor-cli/internal/model"

// Dedupe drops candidates whose normalized name was already seen. The first
// occurrence wins, so source order is part of the contract. Names whose
// normalized form is 2 characters or shorter are discarded as noise.
func Dedupe(candidates []model.Candidate) []model.Candidate {
	seen := make(map[string]struct{}, len(candidates))
	unique := make([]model.Candidate, 0, len(candidates))

	for _, c := range candidates {
		key := c.Key()
		if len(key) <= 2 {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}

	return unique
}
