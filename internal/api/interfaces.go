package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/quietravel/gateway/internal/destination"
	"github.com/quietravel/gateway/internal/planner"
	"github.com/quietravel/gateway/internal/screen"
)

// Catalog is the lenient catalog the screens read from.
// *destination.Catalog satisfies it.
type Catalog interface {
	screen.CatalogSource
	FetchBySlug(ctx context.Context, slug string) *destination.Destination
	Refresh(ctx context.Context, slug string) (*destination.Destination, error)
}

// PlanService drives plan submissions. *screen.Plan satisfies it.
type PlanService interface {
	Options() planner.Options
	Match(ctx context.Context, prefs destination.TripPreferences) (screen.PlanResult, error)
	Lookup(ctx context.Context, id uuid.UUID) (*planner.PlanRecord, error)
	Recent(ctx context.Context, mood string, limit int) ([]planner.PlanRecord, error)
}

// ProfileService reports trip counters and badges. *screen.Profile satisfies it.
type ProfileService interface {
	View(ctx context.Context) (screen.ProfileView, error)
}

// Pinger is anything the health check can ping.
type Pinger interface {
	Ping(ctx context.Context) error
}
