package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/quietravel/gateway/internal/destination"
)

// Wizard errors.
var (
	ErrInvalidTransition = errors.New("invalid wizard transition")
	ErrUnknownMood       = errors.New("unknown mood")
	ErrUnknownDuration   = errors.New("unknown duration")
	ErrEmptyActivity     = errors.New("empty activity")
	ErrNotReady          = errors.New("wizard is not ready to submit")
	ErrSubmitInFlight    = errors.New("submission already in flight")
)

// Step is a wizard state.
type Step int

// Wizard steps.
const (
	StepCancelled  Step = 0
	StepMoodSelect Step = 1
	StepDetails    Step = 2
)

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepCancelled:
		return "cancelled"
	case StepMoodSelect:
		return "mood"
	case StepDetails:
		return "details"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Matcher is the tour matching call, satisfied by destination.Catalog.
type Matcher interface {
	MatchTours(ctx context.Context, prefs destination.TripPreferences) json.RawMessage
}

// Wizard builds TripPreferences across two steps: mood, then details
// (duration, activities, region). Cancelling discards everything.
type Wizard struct {
	mu         sync.Mutex
	step       Step
	mood       Mood
	duration   Duration
	activities map[string]struct{}
	region     string
	inFlight   bool
}

// NewWizard returns a wizard waiting for a mood.
func NewWizard() *Wizard {
	w := &Wizard{}
	w.reset(StepMoodSelect)
	return w
}

func (w *Wizard) reset(step Step) {
	w.step = step
	w.mood = ""
	w.duration = ""
	w.activities = make(map[string]struct{})
	w.region = ""
}

func (w *Wizard) expect(step Step, event string) error {
	if w.step != step {
		return fmt.Errorf("%w: %s in step %s", ErrInvalidTransition, event, w.step)
	}
	return nil
}

// Step returns the current state.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// SelectMood records m and advances to the details step.
func (w *Wizard) SelectMood(m Mood) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expect(StepMoodSelect, "select mood"); err != nil {
		return err
	}
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMood, m)
	}
	w.mood = m
	w.step = StepDetails
	return nil
}

// SelectDuration records d, replacing any earlier choice.
func (w *Wizard) SelectDuration(d Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expect(StepDetails, "select duration"); err != nil {
		return err
	}
	if !d.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDuration, d)
	}
	w.duration = d
	return nil
}

// ToggleActivity adds a if absent and removes it if present.
func (w *Wizard) ToggleActivity(a string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expect(StepDetails, "toggle activity"); err != nil {
		return err
	}
	a = strings.TrimSpace(a)
	if a == "" {
		return ErrEmptyActivity
	}
	if _, ok := w.activities[a]; ok {
		delete(w.activities, a)
	} else {
		w.activities[a] = struct{}{}
	}
	return nil
}

// SelectRegion restricts the match to region; an empty string lifts the restriction.
func (w *Wizard) SelectRegion(region string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expect(StepDetails, "select region"); err != nil {
		return err
	}
	w.region = strings.TrimSpace(region)
	return nil
}

// Back returns to the mood step. The recorded mood is kept.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expect(StepDetails, "back"); err != nil {
		return err
	}
	w.step = StepMoodSelect
	return nil
}

// Cancel closes the wizard and discards the preferences.
func (w *Wizard) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == StepCancelled {
		return fmt.Errorf("%w: cancel in step %s", ErrInvalidTransition, w.step)
	}
	w.reset(StepCancelled)
	return nil
}

// Restart reopens a cancelled wizard with fresh preferences.
func (w *Wizard) Restart() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expect(StepCancelled, "restart"); err != nil {
		return err
	}
	w.reset(StepMoodSelect)
	return nil
}

// CanSubmit reports whether the wizard is on the details step with a duration.
func (w *Wizard) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canSubmitLocked()
}

func (w *Wizard) canSubmitLocked() bool {
	return w.step == StepDetails && w.duration != ""
}

// Preferences returns a copy of the preferences gathered so far.
// Activities are sorted so equal selections always encode identically.
func (w *Wizard) Preferences() destination.TripPreferences {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Wizard) snapshotLocked() destination.TripPreferences {
	acts := make([]string, 0, len(w.activities))
	for a := range w.activities {
		acts = append(acts, a)
	}
	slices.Sort(acts)

	return destination.TripPreferences{
		Mood:       string(w.mood),
		Duration:   string(w.duration),
		Activities: acts,
		Region:     w.region,
	}
}

// Submit sends a snapshot of the preferences to m. Only one submission may
// be outstanding; a concurrent call fails with ErrSubmitInFlight.
// The returned payload is nil when the matcher produced nothing.
func (w *Wizard) Submit(ctx context.Context, m Matcher) (destination.TripPreferences, json.RawMessage, error) {
	w.mu.Lock()
	if !w.canSubmitLocked() {
		w.mu.Unlock()
		return destination.TripPreferences{}, nil, ErrNotReady
	}
	if w.inFlight {
		w.mu.Unlock()
		return destination.TripPreferences{}, nil, ErrSubmitInFlight
	}
	w.inFlight = true
	prefs := w.snapshotLocked()
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
	}()

	return prefs, m.MatchTours(ctx, prefs), nil
}

// Replay drives a fresh wizard through the events implied by prefs and
// returns it ready to submit. It is how a one-shot request body is validated
// against the same transitions the interactive flow uses.
func Replay(prefs destination.TripPreferences) (*Wizard, error) {
	w := NewWizard()
	if err := w.SelectMood(Mood(prefs.Mood)); err != nil {
		return nil, err
	}
	if err := w.SelectDuration(Duration(prefs.Duration)); err != nil {
		return nil, err
	}
	// The body carries a set: repeats are selected once, not toggled off.
	seen := make(map[string]struct{}, len(prefs.Activities))
	for _, a := range prefs.Activities {
		k := strings.TrimSpace(a)
		if _, dup := seen[k]; dup && k != "" {
			continue
		}
		seen[k] = struct{}{}
		if err := w.ToggleActivity(a); err != nil {
			return nil, err
		}
	}
	if err := w.SelectRegion(prefs.Region); err != nil {
		return nil, err
	}
	return w, nil
}
