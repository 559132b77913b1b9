package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"quizard/internal/domain"
)

// ResponseValidator parses raw model output strictly and classifies it as a
// conversational reply or a quiz. The model is untrusted input: every
// structural claim (count, options, answer membership) is checked here, and
// nothing is deserialized directly into domain types.
type ResponseValidator struct{}

// NewResponseValidator creates a new ResponseValidator.
func NewResponseValidator() *ResponseValidator {
	return &ResponseValidator{}
}

// responseItem mirrors one element of the model output. Pointer fields
// distinguish an absent or null field from an empty one.
type responseItem struct {
	Message  *string  `json:"message"`
	Question *string  `json:"question"`
	Options  []string `json:"options"`
	Answer   *string  `json:"answer"`
}

// statefulEnvelope mirrors the single-object conversation response.
type statefulEnvelope struct {
	Type    *string        `json:"type"`
	Role    *string        `json:"role"`
	Content []responseItem `json:"content"`
}

// Validate parses raw and classifies it according to the request mode.
// Parse failures yield CodeInvalidFormat; structural violations yield
// CodeInvalidSchema; a quiz without a caller-supplied title yields
// CodeMissingTitle. The returned result never carries balance information;
// the caller settles the charge afterwards.
func (v *ResponseValidator) Validate(req *domain.GenerationRequest, raw string) (*domain.GenerationResult, error) {
	if req.Stateful() {
		return v.validateStateful(req, raw)
	}
	return v.validateStateless(req, raw)
}

func (v *ResponseValidator) validateStateless(req *domain.GenerationRequest, raw string) (*domain.GenerationResult, error) {
	var items []responseItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, domain.NewInvalidFormatError(err)
	}
	if len(items) == 0 {
		return nil, domain.NewInvalidSchemaError("response array is empty")
	}

	// A non-null question in the first element marks the whole array as a
	// quiz; anything else is a conversational reply.
	if items[0].Question == nil {
		return v.conversationalResult(items)
	}
	return v.quizResult(req, items)
}

func (v *ResponseValidator) validateStateful(req *domain.GenerationRequest, raw string) (*domain.GenerationResult, error) {
	var envelope statefulEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, domain.NewInvalidFormatError(err)
	}
	if envelope.Type == nil {
		return nil, domain.NewInvalidSchemaError("response object has no type field")
	}
	if len(envelope.Content) == 0 {
		return nil, domain.NewInvalidSchemaError("response content is empty")
	}

	switch *envelope.Type {
	case string(domain.ResultConversational):
		return v.conversationalResult(envelope.Content)
	case string(domain.ResultQuizGenerated):
		return v.quizResult(req, envelope.Content)
	default:
		return nil, domain.NewInvalidSchemaError(fmt.Sprintf("unknown response type %q", *envelope.Type))
	}
}

func (v *ResponseValidator) conversationalResult(items []responseItem) (*domain.GenerationResult, error) {
	first := items[0]
	if first.Message == nil || strings.TrimSpace(*first.Message) == "" {
		return nil, domain.NewInvalidSchemaError("conversational response has no message")
	}
	return &domain.GenerationResult{
		Kind:    domain.ResultConversational,
		Message: *first.Message,
	}, nil
}

func (v *ResponseValidator) quizResult(req *domain.GenerationRequest, items []responseItem) (*domain.GenerationResult, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, domain.NewMissingTitleError()
	}
	if len(items) != req.QuestionCount {
		return nil, domain.NewInvalidSchemaError(fmt.Sprintf(
			"expected %d questions, model returned %d", req.QuestionCount, len(items)))
	}

	questions := make([]domain.Question, 0, len(items))
	for i, item := range items {
		if item.Question == nil {
			return nil, domain.NewInvalidSchemaError(fmt.Sprintf("question %d has no question field", i))
		}
		if item.Answer == nil {
			return nil, domain.NewInvalidSchemaError(fmt.Sprintf("question %d has no answer field", i))
		}
		question := domain.Question{
			Question: *item.Question,
			Options:  item.Options,
			Answer:   *item.Answer,
		}
		if err := question.Validate(); err != nil {
			return nil, domain.NewInvalidSchemaError(fmt.Sprintf("question %d: %v", i, err))
		}
		questions = append(questions, question)
	}

	quiz := &domain.Quiz{Title: req.Title, Questions: questions}
	if err := quiz.Validate(); err != nil {
		return nil, domain.NewInvalidSchemaError(err.Error())
	}
	return &domain.GenerationResult{
		Kind: domain.ResultQuizGenerated,
		Quiz: quiz,
	}, nil
}
