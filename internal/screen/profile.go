package screen

import (
	"context"

	"github.com/quietravel/gateway/internal/planner"
)

// StatsSource reports plan history totals.
type StatsSource interface {
	Stats(ctx context.Context) (planner.Stats, error)
}

// Profile shows the user's trip counters.
type Profile struct {
	stats StatsSource
}

// NewProfile wires a Profile controller. A nil source reports zeros.
func NewProfile(stats StatsSource) *Profile {
	return &Profile{stats: stats}
}

// ProfileView is what the profile screen renders.
type ProfileView struct {
	planner.Stats
	Achievements []planner.Achievement `json:"achievements"`
}

// View reports the counters and the badge catalogue earned from them.
func (p *Profile) View(ctx context.Context) (ProfileView, error) {
	if p.stats == nil {
		return ProfileView{Achievements: planner.Achievements(planner.Stats{})}, nil
	}

	s, err := p.stats.Stats(ctx)
	if err != nil {
		return ProfileView{}, err
	}
	return ProfileView{Stats: s, Achievements: planner.Achievements(s)}, nil
}
