package screen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quietravel/gateway/internal/destination"
	"github.com/quietravel/gateway/internal/planner"
)

// ErrInvalidPreferences wraps every wizard rejection of a submitted body.
var ErrInvalidPreferences = errors.New("invalid trip preferences")

// PlanHistory persists submissions. *storage.Repository satisfies it.
type PlanHistory interface {
	SavePlan(ctx context.Context, rec planner.PlanRecord) error
	GetPlan(ctx context.Context, id uuid.UUID) (*planner.PlanRecord, error)
	PlansByMood(ctx context.Context, mood string, limit int) ([]planner.PlanRecord, error)
	Stats(ctx context.Context) (planner.Stats, error)
}

// PlanResult is the outcome of a submission. Match is nil when the catalog
// service had nothing to offer.
type PlanResult struct {
	PlanID      uuid.UUID                   `json:"plan_id"`
	Preferences destination.TripPreferences `json:"preferences"`
	Match       json.RawMessage             `json:"match"`
}

// Plan drives the preference wizard and submits the result.
type Plan struct {
	matcher planner.Matcher
	history PlanHistory
	log     *slog.Logger
}

// NewPlan wires a Plan controller. history may be nil.
func NewPlan(matcher planner.Matcher, history PlanHistory, log *slog.Logger) *Plan {
	if log == nil {
		log = slog.Default()
	}
	return &Plan{matcher: matcher, history: history, log: log}
}

// Options lists the choices offered by the wizard.
func (p *Plan) Options() planner.Options {
	return planner.AvailableOptions()
}

// Match replays prefs through the wizard and submits it. A history failure
// is logged and does not fail the submission.
func (p *Plan) Match(ctx context.Context, prefs destination.TripPreferences) (PlanResult, error) {
	w, err := planner.Replay(prefs)
	if err != nil {
		return PlanResult{}, fmt.Errorf("%w: %w", ErrInvalidPreferences, err)
	}

	submitted, match, err := w.Submit(ctx, p.matcher)
	if err != nil {
		return PlanResult{}, fmt.Errorf("%w: %w", ErrInvalidPreferences, err)
	}

	rec := planner.NewPlanRecord(submitted, match != nil)
	if p.history != nil {
		if err := p.history.SavePlan(ctx, rec); err != nil {
			p.log.Warn("saving plan failed", "plan_id", rec.ID, "err", err)
		}
	}

	return PlanResult{PlanID: rec.ID, Preferences: submitted, Match: match}, nil
}

// Lookup returns a stored plan, or nil when it is unknown or history is off.
func (p *Plan) Lookup(ctx context.Context, id uuid.UUID) (*planner.PlanRecord, error) {
	if p.history == nil {
		return nil, nil
	}
	return p.history.GetPlan(ctx, id)
}

// Recent lists the latest plans for mood. An unknown mood is rejected.
func (p *Plan) Recent(ctx context.Context, mood string, limit int) ([]planner.PlanRecord, error) {
	if !planner.Mood(mood).Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreferences, planner.ErrUnknownMood)
	}
	if p.history == nil {
		return []planner.PlanRecord{}, nil
	}
	recs, err := p.history.PlansByMood(ctx, mood, limit)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []planner.PlanRecord{}
	}
	return recs, nil
}
