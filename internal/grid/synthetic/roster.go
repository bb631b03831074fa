package synthetic

import (
	"math"

	"github.com/i474232898/powercast-data/internal/grid"
)

var assetRoster = []grid.Asset{
	{ID: "hydro-grande-dixence", Name: "Grande Dixence", Type: grid.AssetHydro, Status: grid.AssetOnline, CapacityMW: 2000, Health: 96},
	{ID: "solar-mont-soleil", Name: "Mont-Soleil Solar Park", Type: grid.AssetSolar, Status: grid.AssetOnline, CapacityMW: 600, Health: 92},
	{ID: "wind-gotthard", Name: "Gotthard Wind Farm", Type: grid.AssetWind, Status: grid.AssetOnline, CapacityMW: 300, Health: 88},
	{ID: "gas-chavalon", Name: "Chavalon CCGT", Type: grid.AssetGas, Status: grid.AssetStandby, CapacityMW: 400, Health: 90},
	{ID: "nuclear-leibstadt", Name: "Leibstadt", Type: grid.AssetNuclear, Status: grid.AssetOnline, CapacityMW: 1220, Health: 98},
	{ID: "thermal-cornaux", Name: "Cornaux Thermal", Type: grid.AssetThermal, Status: grid.AssetOffline, CapacityMW: 80, Health: 64},
}

var scenarioList = []grid.Scenario{
	{ID: "heatwave", Name: "Summer Heatwave", Probability: 0.15, Impact: grid.ImpactNegative, LoadDeltaMW: 1200},
	{ID: "cold-snap", Name: "Winter Cold Snap", Probability: 0.10, Impact: grid.ImpactNegative, LoadDeltaMW: 800},
	{ID: "high-wind", Name: "Sustained High Wind", Probability: 0.25, Impact: grid.ImpactPositive, LoadDeltaMW: -400},
	{ID: "solar-surplus", Name: "Midday Solar Surplus", Probability: 0.30, Impact: grid.ImpactPositive, LoadDeltaMW: -650},
}

var patternList = []grid.Pattern{
	{ID: "morning-ramp", Name: "Morning Ramp", Category: grid.PatternDaily, Confidence: 0.92, Description: "Load climbs steeply between 06:00 and 09:30 on working days"},
	{ID: "evening-peak", Name: "Evening Peak", Category: grid.PatternDaily, Confidence: 0.89, Description: "Second daily maximum around 18:30 driven by residential demand"},
	{ID: "weekend-dip", Name: "Weekend Dip", Category: grid.PatternWeekly, Confidence: 0.88, Description: "Consumption drops roughly 15% on Saturdays and Sundays"},
	{ID: "monday-recovery", Name: "Monday Recovery", Category: grid.PatternWeekly, Confidence: 0.81, Description: "Industrial load returns to weekday levels by Monday noon"},
}

// Assets returns the illustrative roster with fresh output and health jitter.
// Output never exceeds capacity; offline assets produce nothing.
func (g *Generator) Assets() []grid.Asset {
	out := make([]grid.Asset, len(assetRoster))
	for i, a := range assetRoster {
		switch a.Status {
		case grid.AssetOnline:
			a.CurrentOutputMW = math.Round(a.CapacityMW * g.uniform(0.55, 0.95))
		case grid.AssetStandby:
			a.CurrentOutputMW = math.Round(a.CapacityMW * g.uniform(0, 0.05))
		default:
			a.CurrentOutputMW = 0
		}
		a.Health = math.Round(clamp(a.Health+g.uniform(-2, 2), 0, 100)*10) / 10
		out[i] = a
	}
	return out
}

// Scenarios returns a copy of the fixed scenario list.
func (g *Generator) Scenarios() []grid.Scenario {
	out := make([]grid.Scenario, len(scenarioList))
	copy(out, scenarioList)
	return out
}

// Patterns returns a copy of the fixed pattern list.
func (g *Generator) Patterns() []grid.Pattern {
	out := make([]grid.Pattern, len(patternList))
	copy(out, patternList)
	return out
}
