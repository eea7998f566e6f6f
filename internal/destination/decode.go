package destination

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
)

// ErrMalformed is returned when a catalog payload does not match the expected shape.
var ErrMalformed = errors.New("malformed catalog payload")

const (
	minQuietScore = 0
	maxQuietScore = 100
)

// clampScore rounds a raw score to the nearest integer inside [0, 100].
func clampScore(v float64) int {
	if math.IsNaN(v) {
		return minQuietScore
	}
	// Clamp before converting: out-of-range float to int is undefined.
	v = math.Max(minQuietScore, math.Min(maxQuietScore, v))
	return int(math.Round(v))
}

// decodeRecords unmarshals each element of a JSON array on its own.
// Elements that fail to decode are logged and skipped; only a payload that
// is not an array at all is an error.
func decodeRecords[T any](elems []json.RawMessage, kind string) []T {
	out := make([]T, 0, len(elems))
	for i, e := range elems {
		var v T
		if err := json.Unmarshal(e, &v); err != nil {
			slog.Warn("dropping malformed record", "kind", kind, "index", i, "err", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func (r rawDestination) toDestination() (Destination, bool) {
	id := strings.TrimSpace(r.ID)
	slug := strings.TrimSpace(r.Slug)
	if id == "" || slug == "" {
		return Destination{}, false
	}
	return Destination{
		ID:          id,
		Name:        r.Name,
		Slug:        slug,
		Region:      r.Region,
		Province:    r.Province,
		QuietScore:  clampScore(r.QuietScore),
		Subtitle:    r.Subtitle,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Lat:         r.Lat,
		Lng:         r.Lng,
	}, true
}

// normalizeDestinations applies the strict schema step to a decoded list:
// records without id or slug are dropped and the first occurrence of a
// repeated id or slug wins. The result is never nil.
func normalizeDestinations(raw []rawDestination) []Destination {
	out := make([]Destination, 0, len(raw))
	seenID := make(map[string]struct{}, len(raw))
	seenSlug := make(map[string]struct{}, len(raw))

	for _, r := range raw {
		d, ok := r.toDestination()
		if !ok {
			continue
		}
		if _, dup := seenID[d.ID]; dup {
			continue
		}
		if _, dup := seenSlug[d.Slug]; dup {
			continue
		}
		seenID[d.ID] = struct{}{}
		seenSlug[d.Slug] = struct{}{}
		out = append(out, d)
	}

	return out
}

// DecodeDestinations reads a JSON array of destinations from r.
func DecodeDestinations(r io.Reader) ([]Destination, error) {
	var elems []json.RawMessage
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		return nil, fmt.Errorf("%w: decoding destinations: %v", ErrMalformed, err)
	}
	return normalizeDestinations(decodeRecords[rawDestination](elems, "destination")), nil
}

// DecodePOIs reads a JSON array of points of interest from r, applying the
// same id/slug and score rules as destinations.
func DecodePOIs(r io.Reader) ([]POI, error) {
	var elems []json.RawMessage
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		return nil, fmt.Errorf("%w: decoding points of interest: %v", ErrMalformed, err)
	}
	raw := decodeRecords[rawPOI](elems, "poi")

	out := make([]POI, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, p := range raw {
		id := strings.TrimSpace(p.ID)
		slug := strings.TrimSpace(p.Slug)
		if id == "" || slug == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, POI{
			ID:         id,
			Name:       p.Name,
			Slug:       slug,
			Type:       p.Type,
			QuietScore: clampScore(p.QuietScore),
			Lat:        p.Lat,
			Lng:        p.Lng,
			Color:      p.Color,
			Region:     p.Region,
		})
	}

	return out, nil
}
