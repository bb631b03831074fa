package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/powercast-data/internal/grid"
	"github.com/i474232898/powercast-data/internal/grid/synthetic"
	"github.com/i474232898/powercast-data/internal/store"
)

var testNow = time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC)

// newTestApp serves synthetic data only: no remote is configured.
func newTestApp(t *testing.T) (*fiber.App, *grid.Service) {
	t.Helper()

	gen := synthetic.NewSeeded(7, testNow)
	svc := grid.NewService(nil, synthetic.Fallbacks(gen), store.NewMemoryStore(10, 0), nil)

	app := fiber.New()
	RegisterRoutes(app, svc, gen)
	return app, svc
}

func get(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestCategoryRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		path string
		key  string
	}{
		{"/api/v1/grid/status", "total_load_mw"},
		{"/api/v1/assets", "assets"},
		{"/api/v1/scenarios", "scenarios"},
		{"/api/v1/patterns", "patterns"},
	}

	for _, tt := range tests {
		code, body := get(t, app, tt.path)
		require.Equal(t, http.StatusOK, code, tt.path)

		var payload map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &payload), tt.path)
		assert.Contains(t, payload, tt.key, tt.path)
	}
}

func TestForecastRoute(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := get(t, app, "/api/v1/forecast?target=wind&horizon_hours=6&step=30m")
	require.Equal(t, http.StatusOK, code)

	var env grid.ForecastEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	require.Len(t, env.Forecasts, 12)
	assert.Equal(t, 30*time.Minute, env.Forecasts[1].Timestamp.Sub(env.Forecasts[0].Timestamp))

	code, body = get(t, app, "/api/v1/forecast")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Len(t, env.Forecasts, grid.DefaultHorizon)
}

func TestForecastValidation(t *testing.T) {
	app, _ := newTestApp(t)

	for _, target := range []string{
		"/api/v1/forecast?horizon_hours=0",
		"/api/v1/forecast?horizon_hours=49",
		"/api/v1/forecast?horizon_hours=soon",
		"/api/v1/forecast?target=hydrogen",
		"/api/v1/forecast?step=15m",
		"/api/v1/forecast/assets?types=solar,fusion",
	} {
		code, _ := get(t, app, target)
		assert.Equal(t, http.StatusBadRequest, code, target)
	}
}

func TestMultiAssetForecastRoute(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := get(t, app, "/api/v1/forecast/assets?types=solar,Wind&horizon_hours=3")
	require.Equal(t, http.StatusOK, code)

	var payload struct {
		HorizonHours int                                   `json:"horizon_hours"`
		Forecasts    map[grid.AssetType]grid.ForecastSeries `json:"forecasts"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 3, payload.HorizonHours)
	require.Len(t, payload.Forecasts, 2)
	assert.Len(t, payload.Forecasts[grid.AssetWind], 3)

	code, body = get(t, app, "/api/v1/forecast/assets")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Len(t, payload.Forecasts, len(grid.AllAssetTypes))
}

func TestSparklineRoute(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := get(t, app, "/api/v1/sparkline?points=40")
	require.Equal(t, http.StatusOK, code)

	var payload struct {
		Points []float64 `json:"points"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Len(t, payload.Points, 40)

	code, _ = get(t, app, "/api/v1/sparkline?points=0")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLiveRoutes(t *testing.T) {
	app, svc := newTestApp(t)

	code, _ := get(t, app, "/api/v1/live/grid")
	assert.Equal(t, http.StatusNotFound, code)

	snap, err := svc.PollLive(context.Background())
	require.NoError(t, err)

	code, body := get(t, app, "/api/v1/live/grid")
	require.Equal(t, http.StatusOK, code)
	var latest grid.GridSnapshot
	require.NoError(t, json.Unmarshal(body, &latest))
	assert.Equal(t, snap.TotalLoadMW, latest.TotalLoadMW)

	from := snap.Timestamp.Add(-time.Minute).Format(time.RFC3339)
	to := snap.Timestamp.Add(time.Minute).Format(time.RFC3339)
	code, _ = get(t, app, "/api/v1/live/history?from="+from+"&to="+to)
	assert.Equal(t, http.StatusOK, code)
}

func TestLiveHistoryValidation(t *testing.T) {
	app, _ := newTestApp(t)

	for _, target := range []string{
		"/api/v1/live/history",
		"/api/v1/live/history?from=yesterday&to=1700000000",
		"/api/v1/live/history?from=1700000100&to=1700000000",
	} {
		code, _ := get(t, app, target)
		assert.Equal(t, http.StatusBadRequest, code, target)
	}
}

func TestParseTime(t *testing.T) {
	ts, err := parseTime("1700000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), ts.Unix())

	ts, err = parseTime("2026-10-19T14:00:00Z")
	require.NoError(t, err)
	assert.True(t, ts.Equal(testNow))

	_, err = parseTime("noon")
	assert.Error(t, err)
}
