package quiz

import (
	"context"
	"strings"

	"github.com/sanandmv7/minitq/internal/domain"
)

// Catalog is an immutable, ordered set of questions. It is defined once
// at startup and never mutated; answer checks are pure functions over it.
type Catalog struct {
	questions []domain.Question
}

func NewCatalog(questions []domain.Question) *Catalog {
	copied := make([]domain.Question, len(questions))
	copy(copied, questions)
	return &Catalog{questions: copied}
}

// Questions returns the full catalog in fixed order, answers included.
// Exposing answers to clients is a known weakness the game accepts.
func (c *Catalog) Questions() []domain.Question {
	copied := make([]domain.Question, len(c.questions))
	copy(copied, c.questions)
	return copied
}

func (c *Catalog) Len() int {
	return len(c.questions)
}

// CheckAnswer reports whether the 1-indexed selection matches the correct
// answer for the question at questionIndex. Both indices are validated;
// selections outside 1..len(options) fail rather than fault.
func (c *Catalog) CheckAnswer(questionIndex, selected int) (bool, error) {
	if questionIndex < 0 || questionIndex >= len(c.questions) {
		return false, domain.ErrQuestionOutOfRange
	}
	question := c.questions[questionIndex]
	if selected < 1 || selected > len(question.Options) {
		return false, domain.ErrOptionOutOfRange
	}
	return strings.EqualFold(question.Options[selected-1], question.Answer), nil
}

// Source yields the current catalog; implementations may serve a static
// set or load and cache one from a backing store.
type Source interface {
	Catalog(ctx context.Context) (*Catalog, error)
}

// Static is a Source backed by a fixed catalog.
type Static struct {
	catalog *Catalog
}

func NewStatic(questions []domain.Question) *Static {
	return &Static{catalog: NewCatalog(questions)}
}

func (s *Static) Catalog(_ context.Context) (*Catalog, error) {
	return s.catalog, nil
}

// DefaultQuestions is the built-in Harry Potter question set used when no
// backing store is configured.
func DefaultQuestions() []domain.Question {
	return []domain.Question{
		{
			Prompt:  "What is Harry Potter's Patronus?",
			Answer:  "stag",
			Options: []string{"stag", "doe", "wolf", "phoenix"},
		},
		{
			Prompt:  "What house is Harry Potter in at Hogwarts?",
			Answer:  "gryffindor",
			Options: []string{"gryffindor", "slytherin", "ravenclaw", "hufflepuff"},
		},
		{
			Prompt:  "What is the core of Harry's wand?",
			Answer:  "phoenix feather",
			Options: []string{"phoenix feather", "dragon heartstring", "unicorn hair", "basilisk fang"},
		},
		{
			Prompt:  "Who killed Dumbledore?",
			Answer:  "snape",
			Options: []string{"snape", "malfoy", "voldemort", "bellatrix"},
		},
		{
			Prompt:  "What is the name of Harry's owl?",
			Answer:  "hedwig",
			Options: []string{"hedwig", "errol", "fawkes", "pigwidgeon"},
		},
	}
}
