package planner

// Achievement is a profile badge.
type Achievement struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

// badge pairs an Achievement with the rule that earns it. A nil rule means
// the history has no data for it (visits, museums, parks, dishes).
type badge struct {
	Achievement
	earnedBy func(Stats) bool
}

var badges = []badge{
	{Achievement{ID: 1, Title: "Primo Viaggio", Description: "Hai creato il tuo primo viaggio", Icon: "airplane"},
		func(s Stats) bool { return s.Trips >= 1 }},
	{Achievement{ID: 2, Title: "Esploratore", Description: "Hai visitato 5 destinazioni", Icon: "map"}, nil},
	{Achievement{ID: 3, Title: "Quiet Master", Description: "Hai trovato 3 destinazioni Q90+", Icon: "star"}, nil},
	{Achievement{ID: 4, Title: "Cultura", Description: "Hai esplorato 10 musei", Icon: "library"}, nil},
	{Achievement{ID: 5, Title: "Natura", Description: "Hai visitato 5 parchi", Icon: "leaf"}, nil},
	{Achievement{ID: 6, Title: "Foodie", Description: "Hai assaggiato 5 piatti locali", Icon: "restaurant"}, nil},
}

// Achievements returns the full badge catalogue with Earned set from s.
func Achievements(s Stats) []Achievement {
	out := make([]Achievement, len(badges))
	for i, b := range badges {
		out[i] = b.Achievement
		out[i].Earned = b.earnedBy != nil && b.earnedBy(s)
	}
	return out
}
