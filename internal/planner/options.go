package planner

// Mood is the traveller's intent, the first wizard choice.
type Mood string

// Moods accepted by the catalog service.
const (
	MoodRelax     Mood = "relax"
	MoodAdventure Mood = "avventura"
	MoodCulture   Mood = "cultura"
	MoodNature    Mood = "natura"
	MoodFood      Mood = "food"
)

// Duration is a bucketed trip length.
type Duration string

// Durations accepted by the catalog service.
const (
	DurationOneDay      Duration = "1-day"
	DurationTwoToThree  Duration = "2-3-days"
	DurationFourToSeven Duration = "4-7-days"
	DurationWeekPlus    Duration = "week"
)

// Option is a selectable value with its display label.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Hint  string `json:"hint,omitempty"`
}

// Options lists everything the plan wizard offers.
type Options struct {
	Moods      []Option `json:"moods"`
	Durations  []Option `json:"durations"`
	Activities []string `json:"activities"`
	Regions    []string `json:"regions"`
}

var moods = []Option{
	{ID: string(MoodRelax), Label: "Relax", Hint: "Calma e tranquillità"},
	{ID: string(MoodAdventure), Label: "Avventura", Hint: "Esplorazione e natura"},
	{ID: string(MoodCulture), Label: "Cultura", Hint: "Storia e arte"},
	{ID: string(MoodNature), Label: "Natura", Hint: "Paesaggi e green"},
	{ID: string(MoodFood), Label: "Food", Hint: "Enogastronomia locale"},
}

var durations = []Option{
	{ID: string(DurationOneDay), Label: "1 giorno"},
	{ID: string(DurationTwoToThree), Label: "2-3 giorni"},
	{ID: string(DurationFourToSeven), Label: "4-7 giorni"},
	{ID: string(DurationWeekPlus), Label: "Settimana+"},
}

var activities = []string{"Natura", "Cultura", "Food", "Spiaggia", "Montagna", "Arte"}

var regions = []string{
	"TOSCANA", "LAZIO", "CAMPANIA", "SICILIA", "PUGLIA", "SARDEGNA",
	"PIEMONTE", "LOMBARDIA", "VENETO", "EMILIA-ROMAGNA",
}

// AvailableOptions returns a fresh copy of the wizard choices.
func AvailableOptions() Options {
	return Options{
		Moods:      append([]Option(nil), moods...),
		Durations:  append([]Option(nil), durations...),
		Activities: append([]string(nil), activities...),
		Regions:    append([]string(nil), regions...),
	}
}

// Valid reports whether m is one of the five known moods.
func (m Mood) Valid() bool {
	for _, o := range moods {
		if o.ID == string(m) {
			return true
		}
	}
	return false
}

// Valid reports whether d is one of the four duration buckets.
func (d Duration) Valid() bool {
	for _, o := range durations {
		if o.ID == string(d) {
			return true
		}
	}
	return false
}
