package nearby

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Coordinate is a WGS 84 position in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Fallback is used whenever the device location is unavailable.
var Fallback = Coordinate{Lat: 41.9028, Lng: 12.4964}

// Labels shown next to the resolved position.
const (
	FallbackLabel = "Roma (default)"
	DeviceLabel   = "La tua posizione"
)

// ErrPermissionDenied is returned by a Locator when the user refused access.
var ErrPermissionDenied = errors.New("location permission denied")

// Locator is the device location capability.
type Locator interface {
	// RequestPermission asks for foreground location access.
	RequestPermission(ctx context.Context) (bool, error)
	// CurrentPosition returns a single fix; there is no continuous tracking.
	CurrentPosition(ctx context.Context) (Coordinate, error)
}

// State of a Resolver.
type State int

// Resolver states.
const (
	LocationUnknown State = iota
	LocationResolved
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case LocationUnknown:
		return "unknown"
	case LocationResolved:
		return "resolved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Location is the outcome of a resolution.
type Location struct {
	Coordinate
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

// Resolver turns a Locator into a resolved Location. It always resolves:
// any failure lands on Fallback.
type Resolver struct {
	locator Locator
	log     *slog.Logger

	mu       sync.Mutex
	state    State
	location Location
}

// NewResolver constructs a Resolver in the LocationUnknown state.
func NewResolver(locator Locator, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{locator: locator, log: log}
}

// Resolve acquires the location once and moves to LocationResolved.
// Calling it again re-acquires, as the "use my location" action does.
func (r *Resolver) Resolve(ctx context.Context) Location {
	loc := r.acquire(ctx)

	r.mu.Lock()
	r.state = LocationResolved
	r.location = loc
	r.mu.Unlock()

	return loc
}

func (r *Resolver) acquire(ctx context.Context) Location {
	fallback := Location{Coordinate: Fallback, Label: FallbackLabel, Default: true}
	if r.locator == nil {
		return fallback
	}

	granted, err := r.locator.RequestPermission(ctx)
	if err != nil {
		r.log.Warn("location permission request failed", "err", err)
		return fallback
	}
	if !granted {
		return fallback
	}

	pos, err := r.locator.CurrentPosition(ctx)
	if err != nil {
		r.log.Warn("location acquisition failed", "err", err)
		return fallback
	}

	return Location{Coordinate: pos, Label: DeviceLabel}
}

// State reports whether a location has been resolved yet.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Location returns the resolved location; ok is false before Resolve.
func (r *Resolver) Location() (Location, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location, r.state == LocationResolved
}

// FixedLocator is a Locator backed by a known position, or by a refusal when
// the position is nil. The HTTP layer builds one from request coordinates.
type FixedLocator struct {
	Position *Coordinate
}

// RequestPermission grants access only when a position is set.
func (f FixedLocator) RequestPermission(context.Context) (bool, error) {
	return f.Position != nil, nil
}

// CurrentPosition returns the fixed position, or ErrPermissionDenied.
func (f FixedLocator) CurrentPosition(context.Context) (Coordinate, error) {
	if f.Position == nil {
		return Coordinate{}, ErrPermissionDenied
	}
	return *f.Position, nil
}
