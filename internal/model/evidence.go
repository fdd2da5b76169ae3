package model

// EvidenceBundle aggregates the fragments collected for one company before
// enrichment. It is transient: built by the fragment merger, consumed
// immediately by the enrichment engine, never persisted.
//
// Every field has a meaningful zero value. A source adapter that failed or
// found nothing contributes its zero fragment; bundle construction never
// fails because a source is absent.
type EvidenceBundle struct {
	Website     string
	SearchText  string
	News        []NewsItem
	Discussions []Discussion
	Registry    RegistryRecord
	Code        CodeActivity
}

// NewsItem is one article from the news-feed source.
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Published   string `json:"published"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// Discussion is one story from the tech-forum source.
type Discussion struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Points   int    `json:"points"`
	Comments int    `json:"num_comments"`
	Text     string `json:"text"`
}

// RegistryRecord is the corporate-registry fragment for a company.
type RegistryRecord struct {
	RegisteredName    string `json:"registered_name"`
	Jurisdiction      string `json:"jurisdiction"`
	IncorporationDate string `json:"incorporation_date"`
	CompanyType       string `json:"company_type"`
	Status            string `json:"status"`
	Address           string `json:"registered_address"`
}

// Empty reports whether no registry match was found.
func (r RegistryRecord) Empty() bool {
	return r.RegisteredName == ""
}

// CodeActivity summarizes a company's code-hosting presence.
type CodeActivity struct {
	RepoCount  int        `json:"repo_count"`
	TotalStars int        `json:"total_stars"`
	Languages  []string   `json:"languages"`
	OrgURL     string     `json:"organization_url"`
	Repos      []CodeRepo `json:"public_repos"`
}

// CodeRepo is one public repository in a CodeActivity summary.
type CodeRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Language    string `json:"language"`
	URL         string `json:"url"`
}
