package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sanandmv7/minitq/internal/domain"
	"github.com/sanandmv7/minitq/internal/game"
)

// leaderboardKey is the literal record key; the value is a JSON array of
// {wallet, score} objects, at most ten, ranked descending.
const leaderboardKey = "leaderboard"

// maxUpsertRetries bounds the WATCH retry loop under write contention.
const maxUpsertRetries = 5

// ScoreStore persists the leaderboard as a single JSON record in Redis.
// UpsertScore runs the read-merge-write under WATCH/MULTI so a racing
// writer forces a retry instead of a lost update.
type ScoreStore struct {
	client *redis.Client
}

func NewScoreStore(client *redis.Client) *ScoreStore {
	return &ScoreStore{client: client}
}

func (s *ScoreStore) Load(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	raw, err := s.client.Get(ctx, leaderboardKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// Never written yet: an empty leaderboard, not an error.
		return []domain.LeaderboardEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", domain.ErrStorageUnavailable, leaderboardKey, err)
	}
	return decodeEntries(raw)
}

func (s *ScoreStore) UpsertScore(ctx context.Context, wallet string, score int) ([]domain.LeaderboardEntry, error) {
	var merged []domain.LeaderboardEntry

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, leaderboardKey).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		var entries []domain.LeaderboardEntry
		if len(raw) > 0 {
			entries, err = decodeEntries(raw)
			if err != nil {
				return err
			}
		}

		merged = game.MergeScore(entries, wallet, score)
		data, err := json.Marshal(merged)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, leaderboardKey, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpsertRetries; i++ {
		err := s.client.Watch(ctx, txn, leaderboardKey)
		if err == nil {
			return merged, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Another writer changed the record mid-flight; retry.
			continue
		}
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: write %q: %v", domain.ErrStorageUnavailable, leaderboardKey, err)
	}
	return nil, fmt.Errorf("%w: write %q: contention retries exhausted", domain.ErrStorageUnavailable, leaderboardKey)
}

func decodeEntries(raw []byte) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: corrupt %q record: %v", domain.ErrStorageUnavailable, leaderboardKey, err)
	}
	return entries, nil
}
