package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quietravel/gateway/internal/destination"
	"github.com/quietravel/gateway/internal/nearby"
	"github.com/quietravel/gateway/internal/screen"
)

const (
	maxBodyBytes = 64 << 10
	// maxPlansLimit caps ?limit= on the plan listing.
	maxPlansLimit = 100
)

// Handlers holds the dependencies for all HTTP handlers.
// Screen controllers are built per request, so every request loads its own snapshot.
type Handlers struct {
	catalog Catalog
	ranker  nearby.Ranker
	plans   PlanService
	profile ProfileService
	log     *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(catalog Catalog, ranker nearby.Ranker, plans PlanService, profile ProfileService, log *slog.Logger) *Handlers {
	return &Handlers{
		catalog: catalog,
		ranker:  ranker,
		plans:   plans,
		profile: profile,
		log:     log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Home handles GET /api/v1/home?q=.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	home := screen.NewHome(h.catalog)
	home.Load(r.Context())
	writeJSON(w, http.StatusOK, home.View(r.URL.Query().Get("q")))
}

// Search handles GET /api/v1/search?q=. The query goes to the catalog service.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	home := screen.NewHome(h.catalog)
	writeJSON(w, http.StatusOK, map[string]any{
		"query":        q,
		"destinations": home.SearchRemote(r.Context(), q),
	})
}

// Inspirations handles GET /api/v1/inspirations.
func (h *Handlers) Inspirations(w http.ResponseWriter, r *http.Request) {
	s := screen.NewInspirations(h.catalog)
	s.Load(r.Context())
	writeJSON(w, http.StatusOK, s.View())
}

// Nearby handles GET /api/v1/nearby?lat=&lng=.
// Coordinates in the query mean the device granted location access;
// without them the screen falls back to Rome.
func (h *Handlers) Nearby(w http.ResponseWriter, r *http.Request) {
	pos, err := parseCoordinate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resolver := nearby.NewResolver(nearby.FixedLocator{Position: pos}, h.log)
	n := screen.NewNearby(h.catalog, resolver, h.ranker, h.log)

	view, err := n.Load(r.Context())
	if err != nil {
		h.log.Error("nearby load failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

var errBadCoordinate = errors.New("lat and lng must be valid coordinates")

// parseCoordinate returns nil when either parameter is absent.
func parseCoordinate(r *http.Request) (*nearby.Coordinate, error) {
	q := r.URL.Query()
	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr == "" || lngStr == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, errBadCoordinate
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil || math.IsNaN(lng) || lng < -180 || lng > 180 {
		return nil, errBadCoordinate
	}
	return &nearby.Coordinate{Lat: lat, Lng: lng}, nil
}

// GetDestination handles GET /api/v1/destinations/{slug}.
func (h *Handlers) GetDestination(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	d := h.catalog.FetchBySlug(r.Context(), slug)
	if d == nil {
		writeError(w, http.StatusNotFound, "destination not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// RefreshDestination handles POST /api/v1/destinations/{slug}/refresh.
// Revalidates against the catalog service, replacing or evicting the cached copy.
func (h *Handlers) RefreshDestination(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	d, err := h.catalog.Refresh(r.Context(), slug)
	if err != nil {
		h.log.Error("destination refresh failed", "slug", slug, "err", err)
		writeError(w, http.StatusBadGateway, "catalog service unavailable")
		return
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "destination not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// PlanOptions handles GET /api/v1/plan/options.
func (h *Handlers) PlanOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.plans.Options())
}

// MatchPlan handles POST /api/v1/plan/match.
func (h *Handlers) MatchPlan(w http.ResponseWriter, r *http.Request) {
	var prefs destination.TripPreferences
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.plans.Match(r.Context(), prefs)
	if err != nil {
		if errors.Is(err, screen.ErrInvalidPreferences) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("plan match failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// GetPlan handles GET /api/v1/plans/{id}.
func (h *Handlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	rec, err := h.plans.Lookup(r.Context(), id)
	if err != nil {
		h.log.Error("plan lookup failed", "plan_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// RecentPlans handles GET /api/v1/plans?mood=&limit=.
func (h *Handlers) RecentPlans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxPlansLimit)
	}

	recs, err := h.plans.Recent(r.Context(), q.Get("mood"), limit)
	if err != nil {
		if errors.Is(err, screen.ErrInvalidPreferences) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("recent plans failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": recs})
}

// Profile handles GET /api/v1/profile.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	view, err := h.profile.View(r.Context())
	if err != nil {
		h.log.Error("profile stats failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis
// connectivity. A nil pinger is reported as disabled and does not degrade
// the status.
func HealthHandlerFunc(db, redis Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		check := func(name string, p Pinger) string {
			if p == nil {
				return "disabled"
			}
			if err := p.Ping(ctx); err != nil {
				log.Error("health check: ping failed", "dependency", name, "err", err)
				status = http.StatusServiceUnavailable
				return "error"
			}
			return "ok"
		}

		body := map[string]string{
			"db":    check("db", db),
			"redis": check("redis", redis),
		}
		body["status"] = "ok"
		if status != http.StatusOK {
			body["status"] = "degraded"
		}

		writeJSON(w, status, body)
	}
}
