package synthetic

import (
	"math"
	"time"

	"github.com/i474232898/powercast-data/internal/grid"
)

// Shape selects the intraday profile applied to a forecast.
type Shape int

const (
	// ShapeDiurnal peaks mid-afternoon and troughs before dawn.
	ShapeDiurnal Shape = iota
	// ShapeWind follows a slow 12-step oscillation with doubled noise.
	ShapeWind
	// ShapeSolar is zero outside 06:00-18:00 and a half-sine inside.
	ShapeSolar
)

func (s Shape) String() string {
	switch s {
	case ShapeWind:
		return "wind"
	case ShapeSolar:
		return "solar"
	default:
		return "diurnal"
	}
}

// quantileZ bounds the central 80% interval of a normal error.
const quantileZ = 1.28

const (
	windPeriodSteps = 12
	daylightStart   = 6
	daylightEnd     = 18
)

// Uncertainty is the unscaled band half-width at horizon index i. It grows
// linearly with i.
func Uncertainty(base, volatility float64, i int) float64 {
	return math.Abs(base * volatility * (0.5 + float64(i)*0.02))
}

// Forecast builds a horizon-point series starting at the generator's clock.
// A non-positive horizon yields an empty series; a non-positive step means one hour.
func (g *Generator) Forecast(horizon int, base, volatility float64, step time.Duration, shape Shape) grid.ForecastSeries {
	if horizon <= 0 {
		return grid.ForecastSeries{}
	}
	if step <= 0 {
		step = time.Hour
	}

	start := g.now()
	series := make(grid.ForecastSeries, 0, horizon)

	for i := 0; i < horizon; i++ {
		ts := start.Add(time.Duration(i) * step)

		value, active := g.shapedValue(shape, ts, i, base, volatility)
		if !active {
			series = append(series, grid.ForecastPoint{Timestamp: ts})
			continue
		}

		band := Uncertainty(base, volatility, i) * quantileZ
		series = append(series, grid.ForecastPoint{
			Timestamp: ts,
			Point:     value,
			Q10:       math.Max(0, value-band),
			Q50:       value,
			Q90:       math.Max(0, value+band),
		})
	}

	return series
}

// shapedValue returns the non-negative point value at index i. active is false
// when the shape produces no output at ts (solar at night).
func (g *Generator) shapedValue(shape Shape, ts time.Time, i int, base, volatility float64) (float64, bool) {
	hour := float64(ts.Hour())

	var (
		factor float64
		noise  float64
	)

	switch shape {
	case ShapeWind:
		factor = 0.6 + 0.4*math.Sin(2*math.Pi*float64(i)/windPeriodSteps)
		noise = g.uniform(-1, 1) * volatility * base
	case ShapeSolar:
		if hour < daylightStart || hour >= daylightEnd {
			return 0, false
		}
		factor = math.Sin((hour - daylightStart) * math.Pi / (daylightEnd - daylightStart))
		noise = g.uniform(-0.5, 0.5) * volatility * base * factor
	default:
		factor = 0.7 + 0.3*math.Sin((hour-6)*math.Pi/12)
		noise = g.uniform(-0.5, 0.5) * volatility * base
	}

	return math.Max(0, base*factor+noise), true
}

// AssetProfile is the (base, volatility, shape) triple used for one asset type.
type AssetProfile struct {
	Base       float64
	Volatility float64
	Shape      Shape
}

// AssetProfiles: nuclear is near-constant, solar and wind are intermittent.
var AssetProfiles = map[grid.AssetType]AssetProfile{
	grid.AssetNuclear: {Base: 3000, Volatility: 0.02, Shape: ShapeDiurnal},
	grid.AssetHydro:   {Base: 3600, Volatility: 0.08, Shape: ShapeDiurnal},
	grid.AssetGas:     {Base: 800, Volatility: 0.12, Shape: ShapeDiurnal},
	grid.AssetThermal: {Base: 600, Volatility: 0.10, Shape: ShapeDiurnal},
	grid.AssetSolar:   {Base: 1200, Volatility: 0.35, Shape: ShapeSolar},
	grid.AssetWind:    {Base: 400, Volatility: 0.40, Shape: ShapeWind},
}

// MultiAssetForecast returns one independent series per requested asset type,
// or per known type when none are given. Types without a profile are skipped.
func (g *Generator) MultiAssetForecast(horizon int, step time.Duration, types ...grid.AssetType) map[grid.AssetType]grid.ForecastSeries {
	if len(types) == 0 {
		types = grid.AllAssetTypes
	}

	out := make(map[grid.AssetType]grid.ForecastSeries, len(types))
	for _, t := range types {
		p, ok := AssetProfiles[t]
		if !ok {
			continue
		}
		out[t] = g.Forecast(horizon, p.Base, p.Volatility, step, p.Shape)
	}
	return out
}

// TargetProfiles gives the fallback shape for each forecast target.
var TargetProfiles = map[grid.ForecastTarget]AssetProfile{
	grid.TargetLoad:    {Base: 500, Volatility: 0.15, Shape: ShapeDiurnal},
	grid.TargetNetLoad: {Base: 450, Volatility: 0.18, Shape: ShapeDiurnal},
	grid.TargetSolar:   {Base: 1200, Volatility: 0.35, Shape: ShapeSolar},
	grid.TargetWind:    {Base: 400, Volatility: 0.40, Shape: ShapeWind},
}

// TargetForecast builds the series for params.Target, defaulting to load.
func (g *Generator) TargetForecast(params grid.Params) grid.ForecastSeries {
	p := params.Normalized()
	profile, ok := TargetProfiles[p.Target]
	if !ok {
		profile = TargetProfiles[grid.TargetLoad]
	}
	return g.Forecast(p.Horizon, profile.Base, profile.Volatility, p.Step, profile.Shape)
}
