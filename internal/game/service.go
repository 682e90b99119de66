package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sanandmv7/minitq/internal/domain"
	"github.com/sanandmv7/minitq/internal/quiz"
	"github.com/sanandmv7/minitq/internal/rewards"
)

// ScoreStore persists the ranked top-10 leaderboard. UpsertScore must be
// atomic from the caller's point of view: read, merge, rank, truncate and
// write happen as one logical operation so concurrent submissions cannot
// silently lose updates.
type ScoreStore interface {
	Load(ctx context.Context) ([]domain.LeaderboardEntry, error)
	UpsertScore(ctx context.Context, wallet string, score int) ([]domain.LeaderboardEntry, error)
}

// Service contains the finish-game and leaderboard use cases.
type Service struct {
	store           ScoreStore
	catalog         quiz.Source
	tokensPerAnswer int
	tokenAddress    string
}

func NewService(store ScoreStore, catalog quiz.Source, tokensPerAnswer int, tokenAddress string) *Service {
	return &Service{
		store:           store,
		catalog:         catalog,
		tokensPerAnswer: tokensPerAnswer,
		tokenAddress:    tokenAddress,
	}
}

// Finish records a completed game: the wallet's best score is merged into
// the persisted leaderboard and the earned token reward is computed.
// Storage failures surface as a wrapped domain.ErrStorageUnavailable
// instead of being masked by an empty snapshot.
func (s *Service) Finish(ctx context.Context, wallet string, score int) (domain.FinishResult, error) {
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return domain.FinishResult{}, fmt.Errorf("load catalog: %w", err)
	}
	if score < 0 || score > catalog.Len() {
		return domain.FinishResult{}, domain.ErrScoreOutOfRange
	}

	entries, err := s.store.UpsertScore(ctx, wallet, score)
	if err != nil {
		log.Error().Err(err).Str("wallet", wallet).Msg("leaderboard update failed")
		return domain.FinishResult{}, err
	}

	return domain.FinishResult{
		EarnedTokens: rewards.Tokens(score, s.tokensPerAnswer),
		TokenAddress: s.tokenAddress,
		Leaderboard:  entries,
	}, nil
}

// Leaderboard returns the current persisted snapshot; a store that has
// never been written reads as an empty table, not an error.
func (s *Service) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	return s.store.Load(ctx)
}
