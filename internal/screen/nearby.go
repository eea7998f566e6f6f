package screen

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/quietravel/gateway/internal/catalog"
	"github.com/quietravel/gateway/internal/destination"
	"github.com/quietravel/gateway/internal/nearby"
)

// NearbyView is what the nearby screen renders.
type NearbyView struct {
	Location     nearby.Location           `json:"location"`
	Destinations []destination.Destination `json:"destinations"`
}

// Nearby resolves the user's position and ranks catalog candidates around it.
type Nearby struct {
	src      CatalogSource
	resolver *nearby.Resolver
	ranker   nearby.Ranker
	store    catalog.Store
	log      *slog.Logger
}

// NewNearby wires a Nearby controller. A nil ranker selects the shuffle policy.
func NewNearby(src CatalogSource, resolver *nearby.Resolver, ranker nearby.Ranker, log *slog.Logger) *Nearby {
	if ranker == nil {
		ranker = nearby.ShuffleRanker{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Nearby{src: src, resolver: resolver, ranker: ranker, log: log}
}

// Load acquires the location and the catalog in parallel, then ranks.
// Neither half fails the screen: location falls back to Rome and the catalog
// to empty. Only a panic in either goroutine is reported as an error.
func (n *Nearby) Load(ctx context.Context) (NearbyView, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var loc nearby.Location

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				n.log.Error("location resolve panicked", "recover", r)
				err = fmt.Errorf("location resolve panicked: %v", r)
			}
		}()
		loc = n.resolver.Resolve(gCtx)
		return nil
	})

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				n.log.Error("catalog load panicked", "recover", r)
				err = fmt.Errorf("catalog load panicked: %v", r)
			}
		}()
		load(gCtx, n.src, &n.store)
		return nil
	})

	if err := g.Wait(); err != nil {
		return NearbyView{}, err
	}

	return n.rank(loc), nil
}

// Relocate re-acquires the position and re-ranks the loaded snapshot.
func (n *Nearby) Relocate(ctx context.Context) NearbyView {
	return n.rank(n.resolver.Resolve(ctx))
}

func (n *Nearby) rank(loc nearby.Location) NearbyView {
	snap := snapshotOrEmpty(&n.store)
	candidates := snap[:min(len(snap), nearby.CandidateLimit)]
	return NearbyView{
		Location:     loc,
		Destinations: n.ranker.Rank(loc.Coordinate, candidates),
	}
}
