package synthetic

import (
	"math"

	"github.com/i474232898/powercast-data/internal/grid"
)

// Baseline portfolio values the live snapshot jitters around.
const (
	baselineLoadMW      = 9700
	baselineSolarMW     = 1800
	baselineWindMW      = 450
	availableCapacityMW = 10600
	nominalFrequencyHz  = 50.0

	// Loads above this are reported as stressed.
	stressedLoadThresholdMW = 10000

	loadJitter      = 0.04
	frequencyJitter = 0.05
)

// GridSnapshot returns the baseline snapshot with jitter on load and frequency.
// Net load is total load minus renewable generation; reserve margin is the
// capacity left above the jittered load.
func (g *Generator) GridSnapshot() grid.GridSnapshot {
	load := math.Round(baselineLoadMW * (1 + g.uniform(-loadJitter, loadJitter)))
	frequency := nominalFrequencyHz + g.uniform(-frequencyJitter, frequencyJitter)
	renewable := float64(baselineSolarMW + baselineWindMW)

	status := grid.StatusNormal
	if load > stressedLoadThresholdMW {
		status = grid.StatusStressed
	}

	return grid.GridSnapshot{
		Timestamp:             g.now().UTC(),
		TotalLoadMW:           load,
		RenewableGenerationMW: renewable,
		SolarGenerationMW:     baselineSolarMW,
		WindGenerationMW:      baselineWindMW,
		NetLoadMW:             load - renewable,
		ReserveMarginMW:       availableCapacityMW - load,
		Frequency:             math.Round(frequency*1000) / 1000,
		Status:                status,
	}
}
