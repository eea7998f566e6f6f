package destination_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietravel/gateway/internal/destination"
)

func catalogPayload() []map[string]any {
	return []map[string]any{
		{"id": "1", "name": "Civita di Bagnoregio", "slug": "civita", "region": "LAZIO", "province": "VT", "quietScore": 88},
		{"id": "2", "name": "Matera", "slug": "matera", "region": "BASILICATA", "province": "MT", "quietScore": 71, "lat": 40.6663, "lng": 16.6043},
	}
}

func jsonHandler(t *testing.T, v any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}

func TestClient_FetchAll(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		jsonHandler(t, catalogPayload())(w, r)
	}))
	defer srv.Close()

	c := destination.NewClient(srv.URL)
	ds, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, ds, 2)

	assert.Equal(t, "/destinations", gotPath)
	assert.Equal(t, "Civita di Bagnoregio", ds[0].Name)
	assert.Equal(t, 88, ds[0].QuietScore)
	assert.False(t, ds[0].HasCoordinate())
	require.True(t, ds[1].HasCoordinate())
	assert.InDelta(t, 40.6663, *ds[1].Lat, 1e-9)
}

func TestClient_FetchAll_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := destination.NewClient(srv.URL).FetchAll(context.Background())
	require.Error(t, err)

	var se *destination.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.False(t, errors.Is(err, destination.ErrNotFound))
}

func TestClient_FetchAll_WrongShape(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]any{"destinations": []any{}}))
	defer srv.Close()

	_, err := destination.NewClient(srv.URL).FetchAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, destination.ErrMalformed)
}

func TestClient_FetchAll_Timeout(t *testing.T) {
	slowSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer slowSrv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := destination.NewClient(slowSrv.URL).FetchAll(ctx)
	require.Error(t, err)
}

func TestClient_Search_EncodesQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "/search", r.URL.Path)
		jsonHandler(t, map[string]any{"destinations": catalogPayload()[:1]})(w, r)
	}))
	defer srv.Close()

	ds, err := destination.NewClient(srv.URL).Search(context.Background(), "borgo & mare")
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "borgo & mare", gotQuery)
}

func TestClient_Search_MissingField(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]any{"total": 0}))
	defer srv.Close()

	ds, err := destination.NewClient(srv.URL).Search(context.Background(), "x")
	require.NoError(t, err)
	assert.NotNil(t, ds)
	assert.Empty(t, ds)
}

func TestClient_FetchBySlug(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/destinations/matera", r.URL.Path)
		jsonHandler(t, catalogPayload()[1])(w, r)
	}))
	defer srv.Close()

	d, err := destination.NewClient(srv.URL).FetchBySlug(context.Background(), "matera")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2", d.ID)
}

func TestClient_FetchBySlug_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := destination.NewClient(srv.URL).FetchBySlug(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, destination.ErrNotFound)
}

func TestClient_FetchBySlug_MissingID(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]any{"name": "Ghost", "slug": "ghost"}))
	defer srv.Close()

	_, err := destination.NewClient(srv.URL).FetchBySlug(context.Background(), "ghost")
	assert.ErrorIs(t, err, destination.ErrMalformed)
}

func TestClient_MatchTours(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tours/match", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		jsonHandler(t, map[string]any{"tours": []string{"a"}})(w, r)
	}))
	defer srv.Close()

	out, err := destination.NewClient(srv.URL).MatchTours(context.Background(), destination.TripPreferences{
		Mood:     "relax",
		Duration: "1-day",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tours":["a"]}`, string(out))

	assert.Equal(t, "relax", got["mood"])
	assert.Equal(t, "1-day", got["duration"])
	assert.Equal(t, []any{}, got["activities"], "activities must be an empty array, not null")
	assert.Equal(t, "", got["region"])
}

func TestClient_MatchTours_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		http.Error(w, "bad", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := destination.NewClient(srv.URL).MatchTours(context.Background(), destination.TripPreferences{})
	require.Error(t, err)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, destination.DefaultBaseURL, destination.NewClient("").BaseURL())
	assert.Equal(t, "http://x/api", destination.NewClient("http://x/api/").BaseURL())
}

func TestDecodeDestinations_StrictSchema(t *testing.T) {
	body := `[
		{"id": "1", "name": "A", "slug": "a", "quietScore": 150},
		{"id": "",  "name": "NoID", "slug": "noid", "quietScore": 50},
		{"id": "2", "name": "NoSlug", "quietScore": 50},
		{"id": "1", "name": "DupID", "slug": "dup-id", "quietScore": 50},
		{"id": "3", "name": "DupSlug", "slug": "a", "quietScore": 50},
		{"id": "4", "name": "B", "slug": "b", "quietScore": 72.6},
		{"id": "5", "name": "C", "slug": "c", "quietScore": -4}
	]`

	ds, err := destination.DecodeDestinations(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, ds, 3)

	assert.Equal(t, "A", ds[0].Name)
	assert.Equal(t, 100, ds[0].QuietScore)
	assert.Equal(t, 73, ds[1].QuietScore)
	assert.Equal(t, 0, ds[2].QuietScore)
}

func TestDecodePOIs(t *testing.T) {
	body := `[
		{"id": "p1", "name": "Faro", "slug": "faro", "type": "landmark", "quietScore": 91, "lat": 38.1, "lng": 15.6, "color": "#00AA88", "region": "SICILIA"},
		{"id": "p2", "name": "Unnamed", "type": "beach", "quietScore": 40}
	]`

	pois, err := destination.DecodePOIs(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, "landmark", pois[0].Type)
	assert.Equal(t, "#00AA88", pois[0].Color)
	require.NotNil(t, pois[0].Lat)
	assert.InDelta(t, 38.1, *pois[0].Lat, 1e-9)
}

func TestDecodePOIs_Malformed(t *testing.T) {
	_, err := destination.DecodePOIs(strings.NewReader(`{"id": 1}`))
	assert.ErrorIs(t, err, destination.ErrMalformed)
}

func TestDecodeDestinations_ExtremeScoresClamp(t *testing.T) {
	body := `[
		{"id": "1", "name": "Huge", "slug": "huge", "quietScore": 1e20},
		{"id": "2", "name": "Tiny", "slug": "tiny", "quietScore": -1e20}
	]`

	ds, err := destination.DecodeDestinations(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, 100, ds[0].QuietScore)
	assert.Equal(t, 0, ds[1].QuietScore)
}

func TestDecodeDestinations_DropsMalformedRecord(t *testing.T) {
	body := `[
		{"id": "1", "name": "Valid", "slug": "valid", "quietScore": 80},
		{"id": 2, "name": "Bad", "slug": "bad", "quietScore": "70"}
	]`

	ds, err := destination.DecodeDestinations(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "valid", ds[0].Slug)
}

func TestDecodePOIs_DropsMalformedRecord(t *testing.T) {
	body := `[
		{"id": "p1", "name": "Faro", "slug": "faro", "quietScore": 91},
		{"id": "p2", "name": "Molo", "slug": "molo", "quietScore": "high"}
	]`

	pois, err := destination.DecodePOIs(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, "p1", pois[0].ID)
}

func TestClient_Search_DropsMalformedRecord(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]any{"destinations": []any{
		catalogPayload()[0],
		map[string]any{"id": 7, "slug": "seven"},
	}}))
	defer srv.Close()

	ds, err := destination.NewClient(srv.URL).Search(context.Background(), "civita")
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "civita", ds[0].Slug)
}
