package planner

import (
	"time"

	"github.com/google/uuid"

	"github.com/quietravel/gateway/internal/destination"
)

// PlanRecord is one submitted wizard, kept for the profile screen.
type PlanRecord struct {
	ID          uuid.UUID                   `json:"id"`
	Preferences destination.TripPreferences `json:"preferences"`
	Matched     bool                        `json:"matched"`
	SubmittedAt time.Time                   `json:"submitted_at"`
}

// NewPlanRecord stamps a submission with a fresh ID and the current time.
func NewPlanRecord(prefs destination.TripPreferences, matched bool) PlanRecord {
	return PlanRecord{
		ID:          uuid.New(),
		Preferences: prefs,
		Matched:     matched,
		SubmittedAt: time.Now().UTC(),
	}
}

// Stats summarises plan history.
type Stats struct {
	Trips      int        `json:"trips"`
	Matched    int        `json:"matched"`
	LastPlanAt *time.Time `json:"last_plan_at"`
}
