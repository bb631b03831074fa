package synthetic

const (
	sparklineMin  = 10
	sparklineMax  = 100
	sparklineStep = 10
)

// Sparkline is a bounded random walk of n values clamped to [10, 100].
func (g *Generator) Sparkline(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}

	out := make([]float64, n)
	v := g.uniform(30, 70)
	for i := range out {
		out[i] = v
		v = clamp(v+g.uniform(-sparklineStep, sparklineStep), sparklineMin, sparklineMax)
	}
	return out
}
