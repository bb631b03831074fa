package grid

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is the response shape of one category, identical for live and
// synthetic data.
type Envelope interface {
	Category() Category
}

// Category implements Envelope; the grid status payload is the snapshot itself.
func (GridSnapshot) Category() Category { return CategoryGridStatus }

// ForecastEnvelope wraps a forecast series.
type ForecastEnvelope struct {
	Forecasts ForecastSeries `json:"forecasts"`
}

func (ForecastEnvelope) Category() Category { return CategoryForecast }

// AssetsEnvelope wraps the asset roster.
type AssetsEnvelope struct {
	Assets []Asset `json:"assets"`
}

func (AssetsEnvelope) Category() Category { return CategoryAssets }

// ScenariosEnvelope wraps the scenario list.
type ScenariosEnvelope struct {
	Scenarios []Scenario `json:"scenarios"`
}

func (ScenariosEnvelope) Category() Category { return CategoryScenarios }

// PatternsEnvelope wraps the detected pattern list.
type PatternsEnvelope struct {
	Patterns []Pattern `json:"patterns"`
}

func (PatternsEnvelope) Category() Category { return CategoryPatterns }

// EmptyEnvelope is returned for categories without a fallback. It encodes as {}.
type EmptyEnvelope struct{}

func (EmptyEnvelope) Category() Category { return CategoryUnknown }

// NewEnvelope returns a zero envelope of the right concrete type for c, ready
// to be decoded into.
func NewEnvelope(c Category) Envelope {
	switch c {
	case CategoryGridStatus:
		return &GridSnapshot{}
	case CategoryForecast:
		return &ForecastEnvelope{}
	case CategoryAssets:
		return &AssetsEnvelope{}
	case CategoryScenarios:
		return &ScenariosEnvelope{}
	case CategoryPatterns:
		return &PatternsEnvelope{}
	default:
		return &EmptyEnvelope{}
	}
}

// RawEnvelope is a live payload exactly as the backend sent it. It encodes
// back to the same JSON, extra fields included.
type RawEnvelope struct {
	category Category
	Payload  json.RawMessage
}

func (r RawEnvelope) Category() Category { return r.category }

func (r RawEnvelope) MarshalJSON() ([]byte, error) {
	if len(r.Payload) == 0 {
		return []byte("{}"), nil
	}
	return r.Payload, nil
}

// Decode unmarshals the payload into out.
func (r RawEnvelope) Decode(out any) error {
	return json.Unmarshal(r.Payload, out)
}

var errMalformedPayload = errors.New("malformed payload")

// requiredFields are the keys a live payload must carry with a non-null value.
var requiredFields = map[Category][]string{
	CategoryGridStatus: {"status", "total_load_mw"},
	CategoryForecast:   {"forecasts"},
	CategoryAssets:     {"assets"},
	CategoryScenarios:  {"scenarios"},
	CategoryPatterns:   {"patterns"},
}

// validatePayload checks that raw is a JSON object carrying the key fields of
// c and that it decodes into the typed envelope of c.
func validatePayload(c Category, raw json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("%w: %v", errMalformedPayload, err)
	}
	for _, key := range requiredFields[c] {
		v, ok := fields[key]
		if !ok || string(v) == "null" || string(v) == `""` {
			return fmt.Errorf("%w: missing %q", errMalformedPayload, key)
		}
	}
	if err := json.Unmarshal(raw, NewEnvelope(c)); err != nil {
		return fmt.Errorf("%w: %v", errMalformedPayload, err)
	}
	return nil
}
