package rewards

import "github.com/sanandmv7/minitq/internal/domain"

// Tokens computes the token reward for a finished game: one fixed
// multiplier per correct answer. Pure arithmetic; minting and transfer
// are the distributor's problem.
func Tokens(correctAnswers, tokensPerAnswer int) int {
	if correctAnswers <= 0 || tokensPerAnswer <= 0 {
		return 0
	}
	return correctAnswers * tokensPerAnswer
}

// TopN returns the first n leaderboard entries (the table is already
// ranked descending when persisted).
func TopN(entries []domain.LeaderboardEntry, n int) []domain.LeaderboardEntry {
	if n > len(entries) {
		n = len(entries)
	}
	top := make([]domain.LeaderboardEntry, n)
	copy(top, entries[:n])
	return top
}
