package screen_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietravel/gateway/internal/destination"
	"github.com/quietravel/gateway/internal/planner"
	"github.com/quietravel/gateway/internal/screen"
)

type stubMatcher struct {
	payload json.RawMessage
	got     destination.TripPreferences
}

func (m *stubMatcher) MatchTours(_ context.Context, prefs destination.TripPreferences) json.RawMessage {
	m.got = prefs
	return m.payload
}

type memoryHistory struct {
	saved   []planner.PlanRecord
	saveErr error
}

func (h *memoryHistory) SavePlan(_ context.Context, rec planner.PlanRecord) error {
	if h.saveErr != nil {
		return h.saveErr
	}
	h.saved = append(h.saved, rec)
	return nil
}

func (h *memoryHistory) GetPlan(_ context.Context, id uuid.UUID) (*planner.PlanRecord, error) {
	for i := range h.saved {
		if h.saved[i].ID == id {
			return &h.saved[i], nil
		}
	}
	return nil, nil
}

func (h *memoryHistory) PlansByMood(_ context.Context, mood string, _ int) ([]planner.PlanRecord, error) {
	var out []planner.PlanRecord
	for _, r := range h.saved {
		if r.Preferences.Mood == mood {
			out = append(out, r)
		}
	}
	return out, nil
}

func (h *memoryHistory) Stats(context.Context) (planner.Stats, error) {
	s := planner.Stats{Trips: len(h.saved)}
	for _, r := range h.saved {
		if r.Matched {
			s.Matched++
		}
	}
	return s, nil
}

func validPrefs() destination.TripPreferences {
	return destination.TripPreferences{
		Mood:       "natura",
		Duration:   "4-7-days",
		Activities: []string{"Spiaggia", "Arte"},
		Region:     "SARDEGNA",
	}
}

func TestPlan_Match(t *testing.T) {
	m := &stubMatcher{payload: json.RawMessage(`{"tours":[1]}`)}
	hist := &memoryHistory{}
	p := screen.NewPlan(m, hist, discardLogger())

	res, err := p.Match(context.Background(), validPrefs())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.PlanID)
	assert.JSONEq(t, `{"tours":[1]}`, string(res.Match))
	assert.Equal(t, []string{"Arte", "Spiaggia"}, m.got.Activities, "submitted activities are sorted")

	require.Len(t, hist.saved, 1)
	assert.Equal(t, res.PlanID, hist.saved[0].ID)
	assert.True(t, hist.saved[0].Matched)
}

func TestPlan_Match_NoPayloadRecordedUnmatched(t *testing.T) {
	hist := &memoryHistory{}
	p := screen.NewPlan(&stubMatcher{}, hist, discardLogger())

	res, err := p.Match(context.Background(), validPrefs())
	require.NoError(t, err)
	assert.Nil(t, res.Match)
	require.Len(t, hist.saved, 1)
	assert.False(t, hist.saved[0].Matched)
}

func TestPlan_Match_Invalid(t *testing.T) {
	p := screen.NewPlan(&stubMatcher{}, nil, discardLogger())

	cases := map[string]struct {
		prefs destination.TripPreferences
		want  error
	}{
		"unknown mood":     {destination.TripPreferences{Mood: "sleepy", Duration: "1-day"}, planner.ErrUnknownMood},
		"unknown duration": {destination.TripPreferences{Mood: "relax", Duration: "forever"}, planner.ErrUnknownDuration},
		"empty activity":   {destination.TripPreferences{Mood: "relax", Duration: "1-day", Activities: []string{""}}, planner.ErrEmptyActivity},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := p.Match(context.Background(), tc.prefs)
			require.Error(t, err)
			assert.ErrorIs(t, err, screen.ErrInvalidPreferences)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPlan_Match_HistoryFailureIsNotFatal(t *testing.T) {
	p := screen.NewPlan(&stubMatcher{}, &memoryHistory{saveErr: fmt.Errorf("db down")}, discardLogger())

	_, err := p.Match(context.Background(), validPrefs())
	assert.NoError(t, err)
}

func TestPlan_LookupAndRecent(t *testing.T) {
	hist := &memoryHistory{}
	p := screen.NewPlan(&stubMatcher{}, hist, discardLogger())

	res, err := p.Match(context.Background(), validPrefs())
	require.NoError(t, err)

	rec, err := p.Lookup(context.Background(), res.PlanID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "SARDEGNA", rec.Preferences.Region)

	recent, err := p.Recent(context.Background(), "natura", 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	none, err := p.Recent(context.Background(), "food", 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = p.Recent(context.Background(), "sleepy", 10)
	assert.ErrorIs(t, err, planner.ErrUnknownMood)
}

func TestPlan_WithoutHistory(t *testing.T) {
	p := screen.NewPlan(&stubMatcher{}, nil, discardLogger())

	rec, err := p.Lookup(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, rec)

	recent, err := p.Recent(context.Background(), "relax", 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestPlan_Options(t *testing.T) {
	opts := screen.NewPlan(&stubMatcher{}, nil, nil).Options()
	assert.Len(t, opts.Moods, 5)
	assert.Len(t, opts.Durations, 4)
	assert.Len(t, opts.Regions, 10)
}
