package domain

import (
	"context"
	"strings"
)

// Difficulty levels accepted by the generation contract.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// IsValidDifficulty reports whether s is one of the accepted levels.
func IsValidDifficulty(s string) bool {
	switch strings.ToLower(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// GenerationRequest is the immutable input of one generation call. History
// is empty in stateless mode; when present the compiled instruction embeds
// it and the stateful response contract applies.
type GenerationRequest struct {
	Prompt        string
	Title         string
	QuestionCount int
	Difficulty    string
	History       []Message
}

// Stateful reports whether the request carries conversation history.
func (r *GenerationRequest) Stateful() bool {
	return len(r.History) > 0
}

// ResultKind tags a GenerationResult.
type ResultKind string

const (
	ResultConversational ResultKind = "message"
	ResultQuizGenerated  ResultKind = "quiz"
)

// GenerationResult is the validated outcome of a generation call. Exactly
// one of Message or Quiz is populated, selected by Kind. NewBalance is the
// principal's balance after the charge; ChargeFailed marks the partial
// success where the content was produced but the deduction did not persist.
type GenerationResult struct {
	Kind         ResultKind
	Message      string
	Quiz         *Quiz
	NewBalance   int
	ChargeFailed bool
}

// TextGenerator is the I/O boundary to the external text-generation model.
// The compiled instruction goes in, the raw (expected-JSON) text comes out.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
