// Package screen holds one controller per app screen. Each controller owns
// its catalog snapshot and derives its views from it on demand.
package screen

import (
	"context"

	"github.com/quietravel/gateway/internal/catalog"
	"github.com/quietravel/gateway/internal/destination"
)

// CatalogSource is the lenient catalog: failures come back empty.
// *destination.Catalog satisfies it.
type CatalogSource interface {
	FetchAll(ctx context.Context) []destination.Destination
	Search(ctx context.Context, query string) []destination.Destination
}

// load fetches the catalog into store. A cancelled request leaves the
// store untouched, as does a load overtaken by a newer one.
func load(ctx context.Context, src CatalogSource, store *catalog.Store) bool {
	tok := store.Begin()
	ds := src.FetchAll(ctx)
	if ctx.Err() != nil {
		return false
	}
	return store.Commit(tok, ds)
}

// snapshotOrEmpty never returns nil so views encode as [] rather than null.
func snapshotOrEmpty(store *catalog.Store) []destination.Destination {
	if s := store.Snapshot(); s != nil {
		return s
	}
	return []destination.Destination{}
}
