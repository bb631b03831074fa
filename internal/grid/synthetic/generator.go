// Package synthetic produces plausible, bounded stand-in data for every
// dashboard category. Nothing here touches the network.
package synthetic

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is the random stream the generators draw from. Float64 returns a
// value in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// LockedSource serializes access to a Source that is not safe for concurrent use.
type LockedSource struct {
	mu  sync.Mutex
	src Source
}

func NewLockedSource(src Source) *LockedSource {
	return &LockedSource{src: src}
}

func (l *LockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// runtimeSource draws from the auto-seeded global generator, which is already
// safe for concurrent use.
type runtimeSource struct{}

func (runtimeSource) Float64() float64 { return rand.Float64() }

// NewSeededSource returns a reproducible source. Wrap it in a LockedSource
// before sharing it between goroutines.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator holds the injected random source and clock. It keeps no other
// state, so every call builds fresh values.
type Generator struct {
	src Source
	now func() time.Time
}

// New builds a Generator. A nil src or now falls back to the runtime defaults.
func New(src Source, now func() time.Time) *Generator {
	if src == nil {
		src = runtimeSource{}
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{src: src, now: now}
}

// NewDefault is the production wiring: non-deterministic randomness and the wall clock.
func NewDefault() *Generator {
	return New(runtimeSource{}, time.Now)
}

// NewSeeded returns a deterministic generator pinned to a fixed clock.
func NewSeeded(seed uint64, now time.Time) *Generator {
	return New(NewLockedSource(NewSeededSource(seed)), func() time.Time { return now })
}

// uniform draws from [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.src.Float64()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
