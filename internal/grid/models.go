package grid

import (
	"time"
)

// GridStatusTag is the coarse health label attached to a grid snapshot.
type GridStatusTag string

const (
	StatusNormal   GridStatusTag = "normal"
	StatusStressed GridStatusTag = "stressed"
)

// AssetType enumerates the generation technologies in the portfolio.
type AssetType string

const (
	AssetHydro   AssetType = "hydro"
	AssetSolar   AssetType = "solar"
	AssetWind    AssetType = "wind"
	AssetGas     AssetType = "gas"
	AssetNuclear AssetType = "nuclear"
	AssetThermal AssetType = "thermal"
)

// AllAssetTypes lists every AssetType in display order.
var AllAssetTypes = []AssetType{AssetHydro, AssetSolar, AssetWind, AssetGas, AssetNuclear, AssetThermal}

// AssetStatus is the operating state of a single asset.
type AssetStatus string

const (
	AssetOnline  AssetStatus = "online"
	AssetStandby AssetStatus = "standby"
	AssetOffline AssetStatus = "offline"
)

// ScenarioImpact tells whether a scenario helps or hurts the portfolio.
type ScenarioImpact string

const (
	ImpactPositive ScenarioImpact = "positive"
	ImpactNegative ScenarioImpact = "negative"
)

// PatternCategory is the recurrence window of a detected pattern.
type PatternCategory string

const (
	PatternDaily  PatternCategory = "daily"
	PatternWeekly PatternCategory = "weekly"
)

// ForecastPoint is one step of a probabilistic forecast.
// Q10 <= Q50 <= Q90 and all values are non-negative.
type ForecastPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Point     float64   `json:"point"`
	Q10       float64   `json:"q10"`
	Q50       float64   `json:"q50"`
	Q90       float64   `json:"q90"`
}

// ForecastSeries is ordered by Timestamp ascending with a fixed step.
type ForecastSeries []ForecastPoint

// GridSnapshot is the instantaneous portfolio view ("now").
type GridSnapshot struct {
	Timestamp             time.Time     `json:"timestamp"`
	TotalLoadMW           float64       `json:"total_load_mw"`
	RenewableGenerationMW float64       `json:"renewable_generation_mw"`
	SolarGenerationMW     float64       `json:"solar_generation_mw"`
	WindGenerationMW      float64       `json:"wind_generation_mw"`
	NetLoadMW             float64       `json:"net_load_mw"`
	ReserveMarginMW       float64       `json:"reserve_margin_mw"`
	Frequency             float64       `json:"frequency"`
	Status                GridStatusTag `json:"status"`
}

// Asset is a single generation unit in the roster.
type Asset struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Type            AssetType   `json:"type"`
	Status          AssetStatus `json:"status"`
	CapacityMW      float64     `json:"capacity_mw"`
	CurrentOutputMW float64     `json:"current_output_mw"`
	Health          float64     `json:"health"`
}

// Scenario is a what-if case with its probability and load impact.
type Scenario struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Probability float64        `json:"probability"`
	Impact      ScenarioImpact `json:"impact"`
	LoadDeltaMW float64        `json:"load_delta_mw"`
}

// Pattern is a recurring behaviour detected in historical load.
type Pattern struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    PatternCategory `json:"type"`
	Confidence  float64         `json:"confidence"`
	Description string          `json:"description"`
}
