package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/powercast-data/internal/grid"
)

var (
	// ErrNotFound is returned when no snapshot matches the query.
	ErrNotFound = errors.New("no grid snapshots recorded")
)

// MemoryStore is a concurrency-safe in-memory history of live grid snapshots.
// Snapshots are kept ordered by Timestamp, so a tick that completes late never
// hides a newer reading.
type MemoryStore struct {
	mu sync.RWMutex

	snapshots []grid.GridSnapshot

	// retention configuration
	maxHistory int           // max number of snapshots kept
	maxAge     time.Duration // optional max age for snapshots
	now        func() time.Time
}

var _ grid.Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveSnapshot inserts a snapshot in timestamp order and enforces retention.
func (s *MemoryStore) SaveSnapshot(snapshot grid.GridSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := sort.Search(len(s.snapshots), func(i int) bool {
		return s.snapshots[i].Timestamp.After(snapshot.Timestamp)
	})
	s.snapshots = append(s.snapshots, grid.GridSnapshot{})
	copy(s.snapshots[i+1:], s.snapshots[i:])
	s.snapshots[i] = snapshot

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.snapshots) > s.maxHistory {
		over := len(s.snapshots) - s.maxHistory
		s.snapshots = s.snapshots[over:]
	}

	// Enforce retention by age, always keeping the newest snapshot.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		j := 0
		for ; j < len(s.snapshots)-1; j++ {
			if !s.snapshots[j].Timestamp.Before(cutoff) {
				break
			}
		}
		if j > 0 {
			s.snapshots = s.snapshots[j:]
		}
	}
}

// GetLatest returns the snapshot with the newest timestamp.
func (s *MemoryStore) GetLatest() (grid.GridSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snapshots) == 0 {
		return grid.GridSnapshot{}, ErrNotFound
	}
	return s.snapshots[len(s.snapshots)-1], nil
}

// GetRange returns all snapshots between from and to (inclusive).
func (s *MemoryStore) GetRange(from, to time.Time) ([]grid.GridSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []grid.GridSnapshot
	for _, snap := range s.snapshots {
		if !snap.Timestamp.Before(from) && !snap.Timestamp.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}

// Len reports how many snapshots are retained.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}
