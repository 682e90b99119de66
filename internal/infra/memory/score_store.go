package memory

import (
	"context"
	"sync"

	"github.com/sanandmv7/minitq/internal/domain"
	"github.com/sanandmv7/minitq/internal/game"
)

// ScoreStore is an in-memory implementation of game.ScoreStore. The
// mutex makes UpsertScore atomic; the read-merge-write sequence cannot
// interleave with another writer.
type ScoreStore struct {
	mu      sync.RWMutex
	entries []domain.LeaderboardEntry
}

func NewScoreStore() *ScoreStore {
	return &ScoreStore{}
}

func (s *ScoreStore) Load(_ context.Context) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]domain.LeaderboardEntry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot, nil
}

func (s *ScoreStore) UpsertScore(_ context.Context, wallet string, score int) ([]domain.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = game.MergeScore(s.entries, wallet, score)
	snapshot := make([]domain.LeaderboardEntry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot, nil
}
