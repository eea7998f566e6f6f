package screen

import (
	"context"
	"slices"

	"github.com/quietravel/gateway/internal/catalog"
	"github.com/quietravel/gateway/internal/destination"
)

// Collection is a curated, static grouping shown on the inspirations screen.
type Collection struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
}

// Category is a filter chip.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var collections = []Collection{
	{
		ID:       "sud-italia",
		Name:     "Sud Italia segreto",
		Subtitle: "10 perle nascoste",
		ImageURL: "https://images.unsplash.com/photo-1533105079780-92b9be482077?w=800&q=80",
	},
	{
		ID:       "mare-fuori-stagione",
		Name:     "Mare fuori stagione",
		Subtitle: "Spiagge deserte",
		ImageURL: "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=800&q=80",
	},
	{
		ID:       "sapori-autentici",
		Name:     "Sapori autentici d'Italia",
		Subtitle: "Sagre e mercati",
		ImageURL: "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=800&q=80",
	},
	{
		ID:       "capolavori-rinascimento",
		Name:     "Capolavori del Rinascimento",
		Subtitle: "Città d'arte",
		ImageURL: "https://images.unsplash.com/photo-1548544149-4835e62ee5b3?w=800&q=80",
	},
}

var categories = []Category{
	{ID: "tutti", Label: "Tutti"},
	{ID: "arte-storia", Label: "Arte & Storia"},
	{ID: "natura", Label: "Natura"},
	{ID: "food", Label: "Food"},
	{ID: "mare", Label: "Mare"},
}

// Collections returns the curated collections.
func Collections() []Collection { return slices.Clone(collections) }

// Categories returns the category chips, "tutti" first.
func Categories() []Category { return slices.Clone(categories) }

// InspirationsView is what the inspirations screen renders.
type InspirationsView struct {
	Collections  []Collection              `json:"collections"`
	Categories   []Category                `json:"categories"`
	Destinations []destination.Destination `json:"destinations"`
}

// Inspirations shows curated collections and the first fifty catalog entries.
type Inspirations struct {
	src   CatalogSource
	store catalog.Store
}

// NewInspirations wires an Inspirations controller over src.
func NewInspirations(src CatalogSource) *Inspirations {
	return &Inspirations{src: src}
}

// Load fetches the catalog snapshot.
func (s *Inspirations) Load(ctx context.Context) {
	load(ctx, s.src, &s.store)
}

// View returns the collections, categories and catalog grid.
func (s *Inspirations) View() InspirationsView {
	return InspirationsView{
		Collections:  Collections(),
		Categories:   Categories(),
		Destinations: catalog.Inspirations(snapshotOrEmpty(&s.store)),
	}
}
