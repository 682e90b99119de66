package domain

import "errors"

var (
	// ErrQuestionOutOfRange is returned for a question index outside the catalog.
	ErrQuestionOutOfRange = errors.New("question index out of range")
	// ErrOptionOutOfRange is returned for an option selection outside 1..len(options).
	ErrOptionOutOfRange = errors.New("option selection out of range")
	// ErrScoreOutOfRange is returned for a submitted score that is negative or exceeds the catalog length.
	ErrScoreOutOfRange = errors.New("score out of range")
	// ErrStorageUnavailable indicates the leaderboard store could not be read or written.
	ErrStorageUnavailable = errors.New("leaderboard storage unavailable")
	// ErrCatalogNotFound indicates the question catalog could not be loaded.
	ErrCatalogNotFound = errors.New("question catalog not found")
)
