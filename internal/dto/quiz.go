package dto

import (
	"encoding/json"
	"time"
)

// SaveQuizRequest is the request body for persisting a generated quiz.
// @Description Request body for saving a quiz set
type SaveQuizRequest struct {
	Title     string            `json:"title"`
	Questions []QuestionPayload `json:"questions"`
}

// SaveQuizResponse returns the id of the stored quiz set.
type SaveQuizResponse struct {
	QuizID string `json:"quiz_id"`
}

// QuizSetSummary is one row in the creator's quiz list.
type QuizSetSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// QuizSetResponse is a full quiz set, including questions and settings.
type QuizSetResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	CreatorID string            `json:"creator_id"`
	Status    string            `json:"status"`
	Questions []QuestionPayload `json:"questions"`
	Settings  json.RawMessage   `json:"settings,omitempty"`
}

// UpdateQuizRequest replaces a quiz set's title and questions.
// @Description Request body for editing a saved quiz
type UpdateQuizRequest struct {
	Title     string            `json:"title"`
	Questions []QuestionPayload `json:"questions"`
}

// UpdateQuizSettingsRequest updates a quiz set's settings and status.
// @Description Request body for updating quiz settings
type UpdateQuizSettingsRequest struct {
	Settings json.RawMessage `json:"settings"`
	Status   string          `json:"status"`
}

// SubmitAttemptRequest is a participant's submission for a quiz set.
// @Description Request body for submitting a quiz attempt
type SubmitAttemptRequest struct {
	ParticipantName  string          `json:"participant_name"`
	Score            int             `json:"score"`
	SubmittedAnswers json.RawMessage `json:"submitted_answers"`
}

// SubmitAttemptResponse acknowledges a stored attempt.
type SubmitAttemptResponse struct {
	AttemptID string `json:"attempt_id"`
}

// AttemptItem is one participant attempt in an analytics response.
type AttemptItem struct {
	ParticipantName  string          `json:"participant_name"`
	Score            int             `json:"score"`
	SubmittedAnswers json.RawMessage `json:"submitted_answers,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// QuizAnalyticsResponse is the per-quiz analytics view for its creator.
type QuizAnalyticsResponse struct {
	QuizID        string        `json:"quiz_id"`
	Title         string        `json:"title"`
	QuestionCount int           `json:"question_count"`
	AttemptCount  int           `json:"attempt_count"`
	AverageScore  float64       `json:"average_score"`
	Attempts      []AttemptItem `json:"attempts"`
}

// OverviewQuizStats summarizes one quiz set on the dashboard.
type OverviewQuizStats struct {
	QuizID        string  `json:"quiz_id"`
	Title         string  `json:"title"`
	QuestionCount int     `json:"question_count"`
	AttemptCount  int     `json:"attempt_count"`
	AverageScore  float64 `json:"average_score"`
}

// OverviewAnalyticsResponse is the dashboard summary across all quiz sets.
type OverviewAnalyticsResponse struct {
	TotalQuizzes  int                 `json:"total_quizzes"`
	TotalAttempts int                 `json:"total_attempts"`
	Quizzes       []OverviewQuizStats `json:"quizzes"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
