package grid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/powercast-data/internal/metrics"
)

// Source tells where a Result's envelope came from.
type Source string

const (
	SourceLive      Source = "live"
	SourceSynthetic Source = "synthetic"
)

var (
	errUnknownCategory = errors.New("unknown category")
	errNoRemote        = errors.New("remote not configured")
	errNoStore         = errors.New("live store not configured")
)

// Result is the two-branch outcome of a fetch: a live payload, or a synthetic
// one together with the remote failure that caused it.
type Result struct {
	Envelope Envelope
	Source   Source
	Cause    error
}

// Synthetic reports whether the envelope was generated locally.
func (r Result) Synthetic() bool {
	return r.Source == SourceSynthetic
}

// Service is the data access facade. It tries the remote backend first and
// substitutes synthetic data on any failure.
type Service struct {
	remote    Remote
	fallbacks map[Category]Fallback
	store     Store
	logger    *zap.Logger
}

// NewService creates a new Service. The fallback table is copied; store may be
// nil when live polling is not used.
func NewService(remote Remote, fallbacks map[Category]Fallback, store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	table := make(map[Category]Fallback, len(fallbacks))
	for c, fb := range fallbacks {
		if fb != nil {
			table[c] = fb
		}
	}

	return &Service{
		remote:    remote,
		fallbacks: table,
		store:     store,
		logger:    logger,
	}
}

// FetchData always returns a structurally valid envelope for c. It never fails;
// whether the data is synthetic is only visible through logs and metrics.
func (s *Service) FetchData(ctx context.Context, c Category, params Params) Envelope {
	return s.Fetch(ctx, c, params).Envelope
}

// Fetch is FetchData with the data source exposed for diagnostics. A live
// envelope is a RawEnvelope holding the backend payload unmodified.
func (s *Service) Fetch(ctx context.Context, c Category, params Params) (result Result) {
	params = params.Normalized()

	if !c.Known() {
		s.logger.Warn("no route for category; returning empty envelope",
			zap.Stringer("category", c))
		return Result{Envelope: EmptyEnvelope{}, Source: SourceSynthetic, Cause: errUnknownCategory}
	}

	defer func() {
		if r := recover(); r != nil {
			result = s.fallback(c, params, fmt.Errorf("remote panicked: %v", r))
		}
	}()

	if s.remote == nil {
		return s.fallback(c, params, errNoRemote)
	}

	var raw json.RawMessage
	if err := s.remote.Request(ctx, c.Endpoint(params), RequestOptions{}, &raw); err != nil {
		return s.fallback(c, params, err)
	}
	if err := validatePayload(c, raw); err != nil {
		return s.fallback(c, params, err)
	}

	return Result{Envelope: RawEnvelope{category: c, Payload: raw}, Source: SourceLive}
}

func (s *Service) fallback(c Category, params Params, cause error) Result {
	metrics.FallbacksTotal.WithLabelValues(c.String()).Inc()

	fb, ok := s.fallbacks[c]
	if !ok {
		s.logger.Warn("remote unavailable and no fallback registered; returning empty envelope",
			zap.Stringer("category", c),
			zap.Error(cause))
		return Result{Envelope: EmptyEnvelope{}, Source: SourceSynthetic, Cause: cause}
	}

	s.logger.Warn("remote unavailable; serving synthetic data",
		zap.Stringer("category", c),
		zap.Int("horizon", params.Horizon),
		zap.Error(cause))

	return Result{Envelope: s.invoke(fb, c, params), Source: SourceSynthetic, Cause: cause}
}

// invoke runs a fallback. A fallback that panics or returns nothing yields
// EmptyEnvelope.
func (s *Service) invoke(fb Fallback, c Category, params Params) (env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("fallback panicked; returning empty envelope",
				zap.Stringer("category", c),
				zap.Any("panic", r))
			env = EmptyEnvelope{}
		}
	}()

	if env = fb(params); env == nil {
		return EmptyEnvelope{}
	}
	return env
}

// PollLive fetches the current grid status and appends it to the live store.
// It is the unit of work of the periodic header refresh.
func (s *Service) PollLive(ctx context.Context) (GridSnapshot, error) {
	if s.store == nil {
		return GridSnapshot{}, errNoStore
	}

	res := s.Fetch(ctx, CategoryGridStatus, Params{})
	metrics.LivePollsTotal.WithLabelValues(string(res.Source)).Inc()

	var snapshot GridSnapshot
	switch env := res.Envelope.(type) {
	case GridSnapshot:
		snapshot = env
	case RawEnvelope:
		if err := env.Decode(&snapshot); err != nil {
			return GridSnapshot{}, fmt.Errorf("decode live grid status: %w", err)
		}
	default:
		return GridSnapshot{}, fmt.Errorf("unexpected grid status envelope %T", res.Envelope)
	}
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}

	s.store.SaveSnapshot(snapshot)
	return snapshot, nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest() (GridSnapshot, error) {
	if s.store == nil {
		return GridSnapshot{}, errNoStore
	}
	return s.store.GetLatest()
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(from, to time.Time) ([]GridSnapshot, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	return s.store.GetRange(from, to)
}
