package orchestrator

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	maxSuggestions  = 3
	maxTypoDistance = 2
)

// suggest returns up to maxSuggestions known names that look like name:
// names containing it as a subsequence, names it contains as one, and
// names within a couple of edits of it. Closest first.
func suggest(name string, known []string) []string {
	if name == "" {
		return nil
	}

	best := make(map[string]int)
	for _, r := range fuzzy.RankFindFold(name, known) {
		best[r.Target] = r.Distance
	}
	for _, candidate := range known {
		if candidate == "" || !fuzzy.MatchFold(candidate, name) {
			continue
		}
		d := fuzzy.RankMatchFold(candidate, name)
		if prev, ok := best[candidate]; !ok || d < prev {
			best[candidate] = d
		}
	}

	for _, candidate := range known {
		if _, ok := best[candidate]; ok || candidate == "" {
			continue
		}
		if d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(candidate)); d <= maxTypoDistance {
			best[candidate] = d
		}
	}

	names := make([]string, 0, len(best))
	for candidate := range best {
		names = append(names, candidate)
	}
	sort.Slice(names, func(i, j int) bool {
		if best[names[i]] != best[names[j]] {
			return best[names[i]] < best[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > maxSuggestions {
		names = names[:maxSuggestions]
	}
	return names
}
