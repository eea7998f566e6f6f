package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quietravel/gateway/internal/catalog"
)

func TestTrending(t *testing.T) {
	snap := numbered(10)
	assert.Equal(t, ids(snap[:3]), ids(catalog.Trending(snap)))
}

func TestTrending_ShortSnapshot(t *testing.T) {
	snap := numbered(2)
	assert.Equal(t, ids(snap), ids(catalog.Trending(snap)))
	assert.Empty(t, catalog.Trending(nil))
}

func TestDefaultView(t *testing.T) {
	snap := numbered(45)
	assert.Equal(t, ids(snap[:20]), ids(catalog.DefaultView(snap)))
}

func TestInspirations(t *testing.T) {
	snap := numbered(70)
	got := catalog.Inspirations(snap)
	assert.Len(t, got, 50)
	assert.Equal(t, snap[49].ID, got[49].ID)
}

func TestPolicies_ReturnCopies(t *testing.T) {
	snap := numbered(5)
	got := catalog.Trending(snap)
	got[0].Name = "changed"
	assert.NotEqual(t, "changed", snap[0].Name)
}
