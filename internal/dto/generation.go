package dto

import "quizard/internal/domain"

// GenerateRequest is the request body for POST /api/generate.
// @Description Request body for quiz generation or chat continuation
type GenerateRequest struct {
	Prompt       string `json:"prompt"`
	Title        string `json:"title,omitempty"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
	ChatID       string `json:"chat_id,omitempty"`
}

// QuestionPayload mirrors domain.Question in API responses.
type QuestionPayload struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// QuizPayload is a generated quiz in an API response.
type QuizPayload struct {
	Title     string            `json:"title"`
	Questions []QuestionPayload `json:"questions"`
}

// GenerateResponse is the structured result of a generation call.
// On a ledger-update failure the generated content is still present and
// Warning explains that no charge was applied.
// @Description Result of a generation call
type GenerateResponse struct {
	Type       string       `json:"type"` // "message" or "quiz"
	Message    string       `json:"message,omitempty"`
	Quiz       *QuizPayload `json:"quiz,omitempty"`
	NewBalance int          `json:"new_balance"`
	Warning    string       `json:"warning,omitempty"`
}

// FromGenerationResult maps a domain result onto the response DTO.
func FromGenerationResult(res *domain.GenerationResult) *GenerateResponse {
	resp := &GenerateResponse{
		Type:       string(res.Kind),
		Message:    res.Message,
		NewBalance: res.NewBalance,
	}
	if res.Quiz != nil {
		resp.Quiz = FromDomainQuiz(res.Quiz)
	}
	if res.ChargeFailed {
		resp.Warning = "Generation succeeded, but the coin deduction failed; no charge was applied. Please contact support."
	}
	return resp
}

// FromDomainQuiz maps a domain quiz onto its payload DTO.
func FromDomainQuiz(q *domain.Quiz) *QuizPayload {
	payload := &QuizPayload{Title: q.Title, Questions: make([]QuestionPayload, 0, len(q.Questions))}
	for _, question := range q.Questions {
		payload.Questions = append(payload.Questions, QuestionPayload{
			Question: question.Question,
			Options:  question.Options,
			Answer:   question.Answer,
		})
	}
	return payload
}
