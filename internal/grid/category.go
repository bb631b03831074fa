package grid

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Category is the closed set of data kinds the dashboard can request.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryGridStatus
	CategoryForecast
	CategoryAssets
	CategoryScenarios
	CategoryPatterns
)

// Categories lists every known category.
var Categories = []Category{
	CategoryGridStatus,
	CategoryForecast,
	CategoryAssets,
	CategoryScenarios,
	CategoryPatterns,
}

var categoryNames = map[Category]string{
	CategoryGridStatus: "grid-status",
	CategoryForecast:   "forecast",
	CategoryAssets:     "assets",
	CategoryScenarios:  "scenarios",
	CategoryPatterns:   "patterns",
}

var categoryPaths = map[Category]string{
	CategoryGridStatus: "/api/v1/grid/status",
	CategoryForecast:   "/api/v1/forecast",
	CategoryAssets:     "/api/v1/assets",
	CategoryScenarios:  "/api/v1/scenarios",
	CategoryPatterns:   "/api/v1/patterns",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Known reports whether c is one of the closed set of categories.
func (c Category) Known() bool {
	_, ok := categoryNames[c]
	return ok
}

// Path is the canonical remote path for the category, without query.
func (c Category) Path() string {
	return categoryPaths[c]
}

// Endpoint returns the remote endpoint (path plus query) for the category.
func (c Category) Endpoint(params Params) string {
	path := c.Path()
	if c != CategoryForecast {
		return path
	}

	p := params.withDefaults()
	values := url.Values{}
	values.Set("target", string(p.Target))
	values.Set("horizon_hours", strconv.Itoa(p.HorizonHours()))
	return fmt.Sprintf("%s?%s", path, values.Encode())
}

// ParseCategory resolves a category by exact, case-insensitive match against
// either its name ("grid-status") or its canonical path ("/api/v1/grid/status").
// Anything else yields CategoryUnknown.
func ParseCategory(s string) Category {
	key := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(key, '?'); i >= 0 {
		key = key[:i]
	}
	key = strings.TrimRight(key, "/")

	for _, c := range Categories {
		if key == categoryNames[c] || key == categoryPaths[c] {
			return c
		}
	}
	return CategoryUnknown
}

// ForecastTarget selects which quantity a forecast describes.
type ForecastTarget string

const (
	TargetLoad    ForecastTarget = "load"
	TargetSolar   ForecastTarget = "solar"
	TargetWind    ForecastTarget = "wind"
	TargetNetLoad ForecastTarget = "net_load"
)

const (
	DefaultHorizon = 24
	DefaultStep    = time.Hour
)

// Params carries the optional request parameters of a category.
// Only CategoryForecast reads them today.
type Params struct {
	// Horizon is the number of points in the returned series.
	Horizon int
	// Step is the spacing between points (30m or 1h).
	Step   time.Duration
	Target ForecastTarget
}

func (p Params) withDefaults() Params {
	if p.Horizon <= 0 {
		p.Horizon = DefaultHorizon
	}
	if p.Step <= 0 {
		p.Step = DefaultStep
	}
	if p.Target == "" {
		p.Target = TargetLoad
	}
	return p
}

// HorizonHours converts Horizon steps into whole hours, rounding up.
func (p Params) HorizonHours() int {
	p = p.withDefaults()
	total := time.Duration(p.Horizon) * p.Step
	hours := int(total / time.Hour)
	if total%time.Hour != 0 {
		hours++
	}
	return hours
}

// Normalized returns p with defaults applied.
func (p Params) Normalized() Params {
	return p.withDefaults()
}
