package catalog

import "github.com/quietravel/gateway/internal/destination"

// Slice sizes for the positional catalog views.
const (
	TrendingSize     = 3
	DefaultViewSize  = 20
	InspirationsSize = 50
)

// Trending returns the first three entries of the snapshot.
// It is a positional slice of the fetched order, not a ranking.
func Trending(snapshot []destination.Destination) []destination.Destination {
	return head(snapshot, TrendingSize)
}

// DefaultView returns the first twenty entries of the snapshot.
func DefaultView(snapshot []destination.Destination) []destination.Destination {
	return head(snapshot, DefaultViewSize)
}

// Inspirations returns the first fifty entries, as shown on the inspirations grid.
func Inspirations(snapshot []destination.Destination) []destination.Destination {
	return head(snapshot, InspirationsSize)
}

// head copies at most n leading entries so callers can't alias the snapshot.
func head(snapshot []destination.Destination, n int) []destination.Destination {
	n = min(n, len(snapshot))
	out := make([]destination.Destination, n)
	copy(out, snapshot[:n])
	return out
}
