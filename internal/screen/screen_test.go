package screen_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/quietravel/gateway/internal/destination"
)

// fakeSource is an in-memory CatalogSource.
type fakeSource struct {
	mu       sync.Mutex
	all      []destination.Destination
	byQuery  map[string][]destination.Destination
	fetches  int
	searches []string
	// gate, when set, blocks Search for that query until the channel closes.
	gate map[string]chan struct{}
}

func (f *fakeSource) FetchAll(ctx context.Context) []destination.Destination {
	f.mu.Lock()
	f.fetches++
	f.mu.Unlock()
	if ctx.Err() != nil {
		return []destination.Destination{}
	}
	if f.all == nil {
		return []destination.Destination{}
	}
	return f.all
}

func (f *fakeSource) Search(ctx context.Context, query string) []destination.Destination {
	f.mu.Lock()
	f.searches = append(f.searches, query)
	ch := f.gate[query]
	f.mu.Unlock()
	if ch != nil {
		<-ch
	}
	if ds, ok := f.byQuery[query]; ok {
		return ds
	}
	return []destination.Destination{}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dest(id, name string, score int) destination.Destination {
	return destination.Destination{ID: id, Name: name, Slug: "slug-" + id, Region: "LAZIO", QuietScore: score}
}

func numbered(n int) []destination.Destination {
	out := make([]destination.Destination, n)
	for i := range out {
		out[i] = dest(fmt.Sprint(i), fmt.Sprintf("Borgo %02d", i), i%100)
	}
	return out
}

func ids(ds []destination.Destination) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func ptr(f float64) *float64 { return &f }
