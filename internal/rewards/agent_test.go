package rewards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sanandmv7/minitq/internal/domain"
)

func TestAgentPaysTopThreeOnce(t *testing.T) {
	source := &staticSource{entries: []domain.LeaderboardEntry{
		{Wallet: "a", Score: 5},
		{Wallet: "b", Score: 4},
		{Wallet: "c", Score: 3},
		{Wallet: "d", Score: 2},
	}}
	dist := &recordingDistributor{}
	agent := NewAgent(source, dist, 10, time.Minute)

	if err := agent.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	want := map[string]int{"a": 50, "b": 40, "c": 30}
	if len(dist.payouts) != len(want) {
		t.Fatalf("expected 3 payouts, got %+v", dist.payouts)
	}
	for wallet, amount := range want {
		if dist.payouts[wallet] != amount {
			t.Fatalf("wallet %s: expected %d, got %d", wallet, amount, dist.payouts[wallet])
		}
	}

	// Same snapshot again: nothing new to pay.
	dist.payouts = map[string]int{}
	if err := agent.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(dist.payouts) != 0 {
		t.Fatalf("expected no duplicate payouts, got %+v", dist.payouts)
	}
}

func TestAgentPaysImprovedScore(t *testing.T) {
	source := &staticSource{entries: []domain.LeaderboardEntry{{Wallet: "a", Score: 3}}}
	dist := &recordingDistributor{}
	agent := NewAgent(source, dist, 10, time.Minute)

	if err := agent.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	source.entries = []domain.LeaderboardEntry{{Wallet: "a", Score: 5}}
	if err := agent.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	if dist.payouts["a"] != 50 {
		t.Fatalf("expected payout for improved score, got %+v", dist.payouts)
	}
}

func TestAgentSkipsZeroScores(t *testing.T) {
	source := &staticSource{entries: []domain.LeaderboardEntry{{Wallet: "a", Score: 0}}}
	dist := &recordingDistributor{}
	agent := NewAgent(source, dist, 10, time.Minute)

	if err := agent.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(dist.payouts) != 0 {
		t.Fatalf("expected no payouts for zero scores, got %+v", dist.payouts)
	}
}

func TestAgentRetriesFailedPayoutNextCycle(t *testing.T) {
	source := &staticSource{entries: []domain.LeaderboardEntry{{Wallet: "a", Score: 5}}}
	dist := &recordingDistributor{failFirst: true}
	agent := NewAgent(source, dist, 10, time.Minute)

	if err := agent.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(dist.payouts) != 0 {
		t.Fatalf("expected failed payout not to be recorded, got %+v", dist.payouts)
	}

	if err := agent.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if dist.payouts["a"] != 50 {
		t.Fatalf("expected payout on retry, got %+v", dist.payouts)
	}
}

type staticSource struct {
	entries []domain.LeaderboardEntry
}

func (s *staticSource) Load(context.Context) ([]domain.LeaderboardEntry, error) {
	return s.entries, nil
}

type recordingDistributor struct {
	payouts   map[string]int
	failFirst bool
}

func (d *recordingDistributor) Distribute(_ context.Context, wallet string, amount int) error {
	if d.failFirst {
		d.failFirst = false
		return errors.New("wallet agent unreachable")
	}
	if d.payouts == nil {
		d.payouts = map[string]int{}
	}
	d.payouts[wallet] = amount
	return nil
}
