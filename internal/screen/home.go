package screen

import (
	"context"
	"strings"

	"github.com/quietravel/gateway/internal/catalog"
	"github.com/quietravel/gateway/internal/destination"
)

// HomeView is what the home screen renders.
type HomeView struct {
	Query    string                    `json:"query"`
	Trending []destination.Destination `json:"trending"`
	Results  []destination.Destination `json:"results"`
}

// Home filters the catalog locally and can also ask the service to search.
type Home struct {
	src    CatalogSource
	store  catalog.Store
	remote catalog.Latest[[]destination.Destination]
}

// NewHome wires a Home controller over src.
func NewHome(src CatalogSource) *Home {
	return &Home{src: src}
}

// Load fetches the catalog snapshot.
func (h *Home) Load(ctx context.Context) {
	load(ctx, h.src, &h.store)
}

// Trending is the first three entries of the snapshot.
func (h *Home) Trending() []destination.Destination {
	return catalog.Trending(h.store.Snapshot())
}

// Filter applies the local search to the snapshot.
func (h *Home) Filter(query string) []destination.Destination {
	return catalog.Search(h.store.Snapshot(), query)
}

// View combines trending and the filtered list for query.
func (h *Home) View(query string) HomeView {
	return HomeView{
		Query:    query,
		Trending: h.Trending(),
		Results:  h.Filter(query),
	}
}

// SearchRemote asks the catalog service for query. When several searches
// overlap, the answer to the most recent one wins regardless of arrival order.
func (h *Home) SearchRemote(ctx context.Context, query string) []destination.Destination {
	tok := h.remote.Begin()
	if strings.TrimSpace(query) == "" {
		h.remote.Commit(tok, []destination.Destination{})
	} else if ds := h.src.Search(ctx, query); ctx.Err() == nil {
		h.remote.Commit(tok, ds)
	}

	ds, _ := h.remote.Get()
	if ds == nil {
		return []destination.Destination{}
	}
	return ds
}
