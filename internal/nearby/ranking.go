package nearby

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/golang/geo/s2"

	"github.com/quietravel/gateway/internal/destination"
)

const (
	// ResultLimit caps the nearby list.
	ResultLimit = 20
	// CandidateLimit is how much of the catalog the nearby screen considers.
	CandidateLimit = 50

	earthRadiusKm = 6371.0088
)

// Ranker orders catalog entries for the nearby screen.
type Ranker interface {
	Rank(origin Coordinate, snapshot []destination.Destination) []destination.Destination
}

// Policy names a Ranker implementation.
type Policy string

// Available ranking policies.
const (
	PolicyShuffle  Policy = "shuffle"
	PolicyDistance Policy = "distance"
)

// NewRanker returns the Ranker for policy.
func NewRanker(policy Policy) (Ranker, error) {
	switch policy {
	case PolicyShuffle, "":
		return ShuffleRanker{}, nil
	case PolicyDistance:
		return DistanceRanker{}, nil
	default:
		return nil, fmt.Errorf("unknown nearby policy %q", policy)
	}
}

// ShuffleRanker ignores the origin and returns a fresh random permutation on
// every call. It stands in until the catalog carries coordinates everywhere.
type ShuffleRanker struct{}

// Rank returns at most ResultLimit entries in random order.
func (ShuffleRanker) Rank(_ Coordinate, snapshot []destination.Destination) []destination.Destination {
	out := slices.Clone(snapshot)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if len(out) > ResultLimit {
		out = out[:ResultLimit]
	}
	return out
}

// DistanceRanker orders by great-circle distance from the origin, nearest
// first, ties broken by name. Entries without coordinates go last, by name.
type DistanceRanker struct{}

// Rank returns at most ResultLimit entries, nearest to origin first.
func (DistanceRanker) Rank(origin Coordinate, snapshot []destination.Destination) []destination.Destination {
	type ranked struct {
		d       destination.Destination
		km      float64
		located bool
	}

	from := s2.LatLngFromDegrees(origin.Lat, origin.Lng)
	items := make([]ranked, len(snapshot))
	for i, d := range snapshot {
		items[i] = ranked{d: d}
		if d.HasCoordinate() {
			items[i].located = true
			items[i].km = DistanceKm(from, s2.LatLngFromDegrees(*d.Lat, *d.Lng))
		}
	}

	slices.SortStableFunc(items, func(a, b ranked) int {
		if a.located != b.located {
			if a.located {
				return -1
			}
			return 1
		}
		if a.located {
			if c := cmp.Compare(a.km, b.km); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.d.Name, b.d.Name)
	})

	n := min(len(items), ResultLimit)
	out := make([]destination.Destination, n)
	for i := range out {
		out[i] = items[i].d
	}
	return out
}

// DistanceKm is the great-circle distance between two points in kilometres.
func DistanceKm(a, b s2.LatLng) float64 {
	return a.Distance(b).Radians() * earthRadiusKm
}
