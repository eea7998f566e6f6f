package catalog

import (
	"slices"
	"strings"

	"github.com/quietravel/gateway/internal/destination"
)

// SearchLimit caps every search result.
const SearchLimit = 20

// Search filters snapshot by a case-insensitive substring match on the
// destination name and orders the matches by quiet score, highest first.
// Equal scores keep their snapshot order. An empty query returns the
// default view unsorted. The snapshot is never modified.
func Search(snapshot []destination.Destination, query string) []destination.Destination {
	if query == "" {
		return DefaultView(snapshot)
	}

	needle := strings.ToLower(query)
	matches := make([]destination.Destination, 0, min(len(snapshot), SearchLimit))
	for _, d := range snapshot {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			matches = append(matches, d)
		}
	}

	slices.SortStableFunc(matches, func(a, b destination.Destination) int {
		return b.QuietScore - a.QuietScore
	})

	if len(matches) > SearchLimit {
		matches = matches[:SearchLimit]
	}
	return matches
}
