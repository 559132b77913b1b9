package domain

import (
	"context"
	"encoding/json"
	"time"
)

// OptionsPerQuestion is the fixed number of choices every question carries.
const OptionsPerQuestion = 4

// Question is a single multiple-choice question. The answer must equal one
// of the options by exact, case-sensitive string match.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Validate enforces the question invariants: non-empty text, exactly four
// unique options, and answer membership.
func (q *Question) Validate() error {
	if q.Question == "" {
		return NewError(CodeValidation, "question text is required", nil)
	}
	if len(q.Options) != OptionsPerQuestion {
		return NewError(CodeValidation, "question must have exactly 4 options", nil)
	}
	seen := make(map[string]struct{}, len(q.Options))
	answerFound := false
	for _, opt := range q.Options {
		if opt == "" {
			return NewError(CodeValidation, "options must not be empty", nil)
		}
		if _, dup := seen[opt]; dup {
			return NewError(CodeValidation, "options must be unique", nil)
		}
		seen[opt] = struct{}{}
		if opt == q.Answer {
			answerFound = true
		}
	}
	if !answerFound {
		return NewError(CodeValidation, "answer must match one of the options", nil)
	}
	return nil
}

// Quiz is a titled, ordered set of questions. It stays paired with the
// request that produced it until the caller persists it as a QuizSet.
type Quiz struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Validate validates the quiz and all of its questions.
func (q *Quiz) Validate() error {
	if q.Title == "" {
		return NewError(CodeValidation, "title is required", nil)
	}
	if len(q.Questions) == 0 {
		return NewError(CodeValidation, "at least one question is required", nil)
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Quiz set lifecycle status.
const (
	QuizStatusDraft     = "draft"
	QuizStatusPublished = "published"
)

// QuizSet is a persisted quiz owned by its creator. Settings is an opaque
// JSON document controlled by the front-end (access code, time limits,
// shuffle, feedback options); the backend stores and returns it verbatim.
type QuizSet struct {
	ID        string
	CreatorID string
	Title     string
	Questions []Question
	Settings  json.RawMessage
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuizAttempt records one participant run against a published quiz set.
type QuizAttempt struct {
	ID               string
	QuizSetID        string
	UserID           string // empty for anonymous participants
	ParticipantName  string
	Score            int
	SubmittedAnswers json.RawMessage
	CreatedAt        time.Time
}

// Validate validates the attempt
func (a *QuizAttempt) Validate() error {
	if a.QuizSetID == "" {
		return NewError(CodeValidation, "quiz set ID is required", nil)
	}
	if a.ParticipantName == "" {
		return NewError(CodeValidation, "participant name is required", nil)
	}
	if a.Score < 0 {
		return NewError(CodeValidation, "score must not be negative", nil)
	}
	return nil
}

// QuizSetRepository defines the interface for quiz set persistence.
type QuizSetRepository interface {
	SaveQuizSet(ctx context.Context, set *QuizSet) error
	GetQuizSetByID(ctx context.Context, id string) (*QuizSet, error)
	GetQuizSetsByCreator(ctx context.Context, creatorID string) ([]*QuizSet, error)
	DeleteQuizSet(ctx context.Context, id, creatorID string) error
	UpdateQuizSet(ctx context.Context, id, creatorID, title string, questions []Question) error
	UpdateQuizSetSettings(ctx context.Context, id, creatorID string, settings json.RawMessage, status string) error
}

// QuizAttemptRepository defines the interface for attempt persistence.
type QuizAttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error
	GetAttemptsByQuizSet(ctx context.Context, quizSetID string) ([]*QuizAttempt, error)
	CountAttemptsByParticipant(ctx context.Context, quizSetID, participantName string) (int, error)
}
