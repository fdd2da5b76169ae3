package research

import (
	"strings"
	"unicode/utf8"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

// Per-source caps on the text contributed to the merged search block, so
// downstream prompt and heuristic input stays bounded.
const (
	searchTextCap     = 1000
	newsItemCap       = 500
	discussionItemCap = 300
	mergedNewsItems   = 3
	mergedDiscussions = 2
)

// Fragments holds the raw adapter outputs for one company before merging.
// A zero field means that source contributed nothing.
type Fragments struct {
	Website     string
	SearchText  string
	News        []model.NewsItem
	Discussions []model.Discussion
	Registry    model.RegistryRecord
	Code        model.CodeActivity
}

// Merge combines adapter fragments into one evidence bundle. Pure
// aggregation: no I/O, deterministic concatenation order (search text, then
// news, then discussions), each source's contribution capped.
func Merge(f Fragments) model.EvidenceBundle {
	var text strings.Builder
	text.WriteString(capString(f.SearchText, searchTextCap))

	for i, item := range f.News {
		if i >= mergedNewsItems {
			break
		}
		text.WriteString(capString(" "+item.Title+" "+item.Description, newsItemCap))
	}

	for i, d := range f.Discussions {
		if i >= mergedDiscussions {
			break
		}
		text.WriteString(capString(" "+d.Title+" "+d.Text, discussionItemCap))
	}

	return model.EvidenceBundle{
		Website:     f.Website,
		SearchText:  text.String(),
		News:        f.News,
		Discussions: f.Discussions,
		Registry:    f.Registry,
		Code:        f.Code,
	}
}

// capString truncates to at most n bytes without splitting a rune.
func capString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
