package rewards

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sanandmv7/minitq/internal/domain"
)

// topWinners is how many leaderboard entries receive payouts each cycle.
const topWinners = 3

// LeaderboardSource reads the current persisted leaderboard snapshot.
type LeaderboardSource interface {
	Load(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// Agent periodically reads the top leaderboard entries and pushes token
// payouts through a Distributor. It is a read-only consumer of the
// leaderboard; it never writes back into this service.
type Agent struct {
	source          LeaderboardSource
	distributor     Distributor
	tokensPerAnswer int
	interval        time.Duration

	// paid tracks the highest score already rewarded per wallet so a
	// wallet is not paid twice for the same result within a run.
	paid map[string]int
}

func NewAgent(source LeaderboardSource, distributor Distributor, tokensPerAnswer int, interval time.Duration) *Agent {
	return &Agent{
		source:          source,
		distributor:     distributor,
		tokensPerAnswer: tokensPerAnswer,
		interval:        interval,
		paid:            make(map[string]int),
	}
}

// Run distributes rewards on each tick until the context is canceled.
func (a *Agent) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", a.interval).Msg("reward agent started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reward agent stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := a.RunOnce(ctx); err != nil {
				log.Error().Err(err).Msg("reward distribution cycle failed")
			}
		}
	}
}

// RunOnce performs a single distribution cycle over the current top
// entries. Individual payout failures are logged and retried on the next
// cycle; only a leaderboard read failure aborts the cycle.
func (a *Agent) RunOnce(ctx context.Context) error {
	entries, err := a.source.Load(ctx)
	if err != nil {
		return err
	}

	for _, entry := range TopN(entries, topWinners) {
		if entry.Score <= 0 {
			continue
		}
		if best, ok := a.paid[entry.Wallet]; ok && best >= entry.Score {
			continue
		}
		amount := Tokens(entry.Score, a.tokensPerAnswer)
		if err := a.distributor.Distribute(ctx, entry.Wallet, amount); err != nil {
			log.Error().Err(err).Str("wallet", entry.Wallet).Int("amount", amount).Msg("payout failed")
			continue
		}
		a.paid[entry.Wallet] = entry.Score
		log.Info().Str("wallet", entry.Wallet).Int("amount", amount).Msg("payout delivered")
	}
	return nil
}
