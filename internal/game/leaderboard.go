package game

import (
	"sort"

	"github.com/sanandmv7/minitq/internal/domain"
)

// MaxEntries bounds the persisted leaderboard; the lowest scorers past
// this point are evicted on every write.
const MaxEntries = 10

// MergeScore applies the best-score-wins upsert to a leaderboard
// snapshot: an existing wallet keeps the max of old and new score, a new
// wallet is appended, then the table is re-ranked descending and
// truncated. The sort is stable so earlier submitters stay ahead of
// later equal scores. The input slice is not modified.
func MergeScore(entries []domain.LeaderboardEntry, wallet string, score int) []domain.LeaderboardEntry {
	merged := make([]domain.LeaderboardEntry, len(entries))
	copy(merged, entries)

	found := false
	for i := range merged {
		if merged[i].Wallet == wallet {
			if score > merged[i].Score {
				merged[i].Score = score
			}
			found = true
			break
		}
	}
	if !found {
		merged = append(merged, domain.LeaderboardEntry{Wallet: wallet, Score: score})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	if len(merged) > MaxEntries {
		merged = merged[:MaxEntries]
	}
	return merged
}
