package synthetic

import (
	"github.com/i474232898/powercast-data/internal/grid"
)

// Fallbacks binds every known category to its generator.
func Fallbacks(g *Generator) map[grid.Category]grid.Fallback {
	return map[grid.Category]grid.Fallback{
		grid.CategoryGridStatus: func(grid.Params) grid.Envelope {
			return g.GridSnapshot()
		},
		grid.CategoryForecast: func(p grid.Params) grid.Envelope {
			return grid.ForecastEnvelope{Forecasts: g.TargetForecast(p)}
		},
		grid.CategoryAssets: func(grid.Params) grid.Envelope {
			return grid.AssetsEnvelope{Assets: g.Assets()}
		},
		grid.CategoryScenarios: func(grid.Params) grid.Envelope {
			return grid.ScenariosEnvelope{Scenarios: g.Scenarios()}
		},
		grid.CategoryPatterns: func(grid.Params) grid.Envelope {
			return grid.PatternsEnvelope{Patterns: g.Patterns()}
		},
	}
}
