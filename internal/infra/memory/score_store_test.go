package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/sanandmv7/minitq/internal/game"
)

func TestScoreStoreEmptyRead(t *testing.T) {
	store := NewScoreStore()

	entries, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", entries)
	}
}

func TestScoreStoreUpsertAndRank(t *testing.T) {
	ctx := context.Background()
	store := NewScoreStore()

	if _, err := store.UpsertScore(ctx, "0xAAA", 3); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := store.UpsertScore(ctx, "0xBBB", 5); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	entries, err := store.UpsertScore(ctx, "0xAAA", 4)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[0].Wallet != "0xBBB" || entries[0].Score != 5 {
		t.Fatalf("expected 0xBBB leading with 5, got %+v", entries[0])
	}
	if entries[1].Wallet != "0xAAA" || entries[1].Score != 4 {
		t.Fatalf("expected 0xAAA at 4, got %+v", entries[1])
	}
}

func TestScoreStoreConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	store := NewScoreStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = store.UpsertScore(ctx, fmt.Sprintf("0x%03d", i), i)
		}(i)
	}
	wg.Wait()

	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != game.MaxEntries {
		t.Fatalf("expected %d entries, got %d", game.MaxEntries, len(entries))
	}
	// All 20 writers ran; the top ten scores must have survived intact.
	for i, entry := range entries {
		if want := 19 - i; entry.Score != want {
			t.Fatalf("position %d: expected score %d, got %+v", i, want, entry)
		}
	}
}
