package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"grid-status", CategoryGridStatus},
		{"GRID-STATUS", CategoryGridStatus},
		{"/api/v1/grid/status", CategoryGridStatus},
		{"/API/V1/Grid/Status/", CategoryGridStatus},
		{"forecast", CategoryForecast},
		{"/api/v1/forecast?target=solar&horizon_hours=12", CategoryForecast},
		{"assets", CategoryAssets},
		{"/api/v1/scenarios", CategoryScenarios},
		{" patterns ", CategoryPatterns},
		// Substrings of a known route must not match.
		{"/api/v1/forecast/accuracy", CategoryUnknown},
		{"/api/v1/forecasting-lab", CategoryUnknown},
		{"/api/v1/assets/hydro-1", CategoryUnknown},
		{"grid", CategoryUnknown},
		{"", CategoryUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCategory(tt.in), tt.in)
	}
}

func TestCategoryNamesRoundTrip(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Known())
		assert.Equal(t, c, ParseCategory(c.String()))
		assert.Equal(t, c, ParseCategory(c.Path()))
		assert.Equal(t, c, NewEnvelope(c).Category())
	}
	assert.False(t, CategoryUnknown.Known())
	assert.Equal(t, "unknown", CategoryUnknown.String())
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "/api/v1/grid/status", CategoryGridStatus.Endpoint(Params{Horizon: 5}))
	assert.Equal(t, "/api/v1/forecast?horizon_hours=24&target=load", CategoryForecast.Endpoint(Params{}))
	assert.Equal(t, "/api/v1/forecast?horizon_hours=48&target=solar",
		CategoryForecast.Endpoint(Params{Horizon: 48, Target: TargetSolar}))
}

func TestHorizonHoursRoundsUp(t *testing.T) {
	assert.Equal(t, 24, Params{}.HorizonHours())
	assert.Equal(t, 2, Params{Horizon: 3, Step: 30 * time.Minute}.HorizonHours())
	assert.Equal(t, 1, Params{Horizon: 1, Step: 30 * time.Minute}.HorizonHours())
}
