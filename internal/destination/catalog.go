package destination

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// catalogAPI is the interface satisfied by Client.
type catalogAPI interface {
	FetchAll(ctx context.Context) ([]Destination, error)
	Search(ctx context.Context, query string) ([]Destination, error)
	FetchBySlug(ctx context.Context, slug string) (*Destination, error)
	MatchTours(ctx context.Context, prefs TripPreferences) (json.RawMessage, error)
}

// DetailCache stores single destinations by slug.
// Get returns nil, nil on a miss.
type DetailCache interface {
	Get(ctx context.Context, slug string) (*Destination, error)
	Set(ctx context.Context, slug string, d *Destination) error
	Delete(ctx context.Context, slug string) error
}

// Catalog is the screen-facing catalog. Every failure is logged and turned
// into an empty slice or a nil result, so callers render an empty state.
type Catalog struct {
	api   catalogAPI
	cache DetailCache
	log   *slog.Logger
}

// NewCatalog wraps api. A nil logger falls back to slog.Default().
func NewCatalog(api catalogAPI, log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.Default()
	}
	return &Catalog{api: api, log: log}
}

// WithDetailCache attaches a cache used by FetchBySlug and returns c.
func (c *Catalog) WithDetailCache(cache DetailCache) *Catalog {
	c.cache = cache
	return c
}

// FetchAll returns the whole catalog, or an empty slice on failure.
func (c *Catalog) FetchAll(ctx context.Context) []Destination {
	ds, err := c.api.FetchAll(ctx)
	if err != nil {
		c.log.Warn("catalog fetch failed", "err", err)
		return []Destination{}
	}
	if ds == nil {
		return []Destination{}
	}
	return ds
}

// Search returns the catalog service's matches for query, or an empty slice on failure.
func (c *Catalog) Search(ctx context.Context, query string) []Destination {
	ds, err := c.api.Search(ctx, query)
	if err != nil {
		c.log.Warn("catalog search failed", "query", query, "err", err)
		return []Destination{}
	}
	if ds == nil {
		return []Destination{}
	}
	return ds
}

// FetchBySlug returns the destination for slug, or nil when it is absent
// or the lookup failed.
func (c *Catalog) FetchBySlug(ctx context.Context, slug string) *Destination {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, slug)
		if err != nil {
			c.log.Warn("detail cache get failed", "slug", slug, "err", err)
		}
		if cached != nil {
			return cached
		}
	}

	d, err := c.api.FetchBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.log.Info("destination not found", "slug", slug)
		} else {
			c.log.Warn("destination fetch failed", "slug", slug, "err", err)
		}
		return nil
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, slug, d); err != nil {
			c.log.Warn("detail cache set failed", "slug", slug, "err", err)
		}
	}

	return d
}

// Refresh bypasses the cache and revalidates slug against the catalog
// service. A fresh record replaces the cached one; a 404 evicts it and
// yields nil, nil. Other failures leave the cache untouched and are returned.
func (c *Catalog) Refresh(ctx context.Context, slug string) (*Destination, error) {
	d, err := c.api.FetchBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if c.cache != nil {
			if err := c.cache.Delete(ctx, slug); err != nil {
				c.log.Warn("detail cache delete failed", "slug", slug, "err", err)
			}
		}
		c.log.Info("destination gone upstream", "slug", slug)
		return nil, nil
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, slug, d); err != nil {
			c.log.Warn("detail cache set failed after refresh", "slug", slug, "err", err)
		}
	}
	return d, nil
}

// MatchTours returns the recommendation payload for prefs, or nil when the
// service failed or answered with JSON null.
func (c *Catalog) MatchTours(ctx context.Context, prefs TripPreferences) json.RawMessage {
	out, err := c.api.MatchTours(ctx, prefs)
	if err != nil {
		c.log.Warn("tour matching failed", "mood", prefs.Mood, "duration", prefs.Duration, "err", err)
		return nil
	}
	if len(out) == 0 || bytes.Equal(bytes.TrimSpace(out), []byte("null")) {
		return nil
	}
	return out
}
