package domain

// Question models an MCQ question with exactly one correct option. The
// correct answer ships in the payload; the web client has always relied
// on that shape and the game accepts the cheating it allows.
type Question struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// LeaderboardEntry is one wallet's best score. Wallets are opaque
// identifier strings; no address format validation is performed.
type LeaderboardEntry struct {
	Wallet string `json:"wallet"`
	Score  int    `json:"score"`
}

// FinishResult summarizes a completed game for a single wallet.
type FinishResult struct {
	EarnedTokens int                `json:"earned_tokens"`
	TokenAddress string             `json:"token_address,omitempty"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard"`
}
