package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sanandmv7/minitq/internal/domain"
)

func TestScoreStoreEmptyRead(t *testing.T) {
	store, _, cleanup := newTestStore(t)
	defer cleanup()

	entries, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty leaderboard on fresh store, got %+v", entries)
	}
}

func TestScoreStorePersistsRankedRecord(t *testing.T) {
	ctx := context.Background()
	store, mr, cleanup := newTestStore(t)
	defer cleanup()

	if _, err := store.UpsertScore(ctx, "0xAAA", 3); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := store.UpsertScore(ctx, "0xAAA", 5); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	entries, err := store.UpsertScore(ctx, "0xBBB", 4)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if len(entries) != 2 || entries[0].Wallet != "0xAAA" || entries[0].Score != 5 || entries[1].Wallet != "0xBBB" {
		t.Fatalf("unexpected snapshot: %+v", entries)
	}

	// The persisted record is a JSON array under the literal key.
	raw, err := mr.Get("leaderboard")
	if err != nil {
		t.Fatalf("redis get: %v", err)
	}
	var persisted []domain.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatalf("unmarshal persisted record: %v", err)
	}
	if len(persisted) != 2 || persisted[0].Score != 5 {
		t.Fatalf("unexpected persisted record: %+v", persisted)
	}
}

func TestScoreStoreReloadsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store, mr, cleanup := newTestStore(t)
	defer cleanup()

	if _, err := store.UpsertScore(ctx, "0xAAA", 5); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// A fresh store against the same server sees the persisted record.
	other := NewScoreStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	entries, err := other.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 || entries[0].Wallet != "0xAAA" {
		t.Fatalf("expected persisted entry, got %+v", entries)
	}
}

func TestScoreStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	store, _, cleanup := newTestStore(t)
	cleanup() // server gone

	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable on load, got %v", err)
	}
	if _, err := store.UpsertScore(ctx, "0xAAA", 1); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable on upsert, got %v", err)
	}
}

func TestScoreStoreCorruptRecord(t *testing.T) {
	ctx := context.Background()
	store, mr, cleanup := newTestStore(t)
	defer cleanup()

	mr.Set("leaderboard", "not json")

	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable for corrupt record, got %v", err)
	}
}

func newTestStore(t *testing.T) (*ScoreStore, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewScoreStore(client), mr, mr.Close
}
