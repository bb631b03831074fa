package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/i474232898/powercast-data/internal/grid"
)

type countingPoller struct {
	calls atomic.Int32
	err   error
}

func (p *countingPoller) PollLive(context.Context) (grid.GridSnapshot, error) {
	p.calls.Add(1)
	if p.err != nil {
		return grid.GridSnapshot{}, p.err
	}
	return grid.GridSnapshot{Timestamp: time.Now().UTC(), Status: grid.StatusNormal}, nil
}

func TestTickSurvivesPollErrors(t *testing.T) {
	poller := &countingPoller{err: errors.New("store full")}
	s := New(time.Second, poller, zaptest.NewLogger(t))

	s.Tick()
	s.Tick()
	assert.Equal(t, int32(2), poller.calls.Load())
}

func TestStartPollsPeriodically(t *testing.T) {
	poller := &countingPoller{}
	s := New(50*time.Millisecond, poller, zaptest.NewLogger(t))

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return poller.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStartWithoutPoller(t *testing.T) {
	s := New(0, nil, nil)
	assert.Equal(t, defaultInterval, s.interval)
	assert.NoError(t, s.Start())
	s.Stop()
}
