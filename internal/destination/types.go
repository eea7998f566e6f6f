package destination

import "encoding/json"

// Destination is a single catalog entry as served by the QuieTravel catalog.
type Destination struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Region      string   `json:"region"`
	Province    string   `json:"province"`
	QuietScore  int      `json:"quietScore"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

// HasCoordinate reports whether the catalog supplied a position for d.
func (d Destination) HasCoordinate() bool {
	return d.Lat != nil && d.Lng != nil
}

// POI represents a single point of interest.
type POI struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Type       string   `json:"type"`
	QuietScore int      `json:"quietScore"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
	Color      string   `json:"color"`
	Region     string   `json:"region"`
}

// TripPreferences is the payload sent to the tour matching endpoint.
// Activities is always encoded as an array, never null.
type TripPreferences struct {
	Mood       string   `json:"mood"`
	Duration   string   `json:"duration"`
	Activities []string `json:"activities"`
	Region     string   `json:"region"`
}

// searchResponse is the envelope returned by GET /search.
type searchResponse struct {
	Destinations []json.RawMessage `json:"destinations"`
}

// rawDestination mirrors Destination but keeps quietScore loose so that
// fractional scores can be coerced instead of failing the whole payload.
type rawDestination struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Region      string   `json:"region"`
	Province    string   `json:"province"`
	QuietScore  float64  `json:"quietScore"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

type rawPOI struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Type       string   `json:"type"`
	QuietScore float64  `json:"quietScore"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	Color      string   `json:"color"`
	Region     string   `json:"region"`
}
