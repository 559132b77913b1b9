package validation

import (
	"fmt"
	"regexp"
	"strings"

	"quizard/internal/domain"
	"quizard/internal/dto"
)

const maxPromptLength = 4000

// Validator provides request validation functionality
type Validator struct {
	allowedQuestionCounts []int
}

// NewValidator creates a new validator instance. The allowed question
// counts come from configuration.
func NewValidator(allowedQuestionCounts []int) *Validator {
	return &Validator{allowedQuestionCounts: allowedQuestionCounts}
}

// ValidateGenerateRequest validates the generation request body.
func (v *Validator) ValidateGenerateRequest(req *dto.GenerateRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Prompt) == "" {
		errors = append(errors, domain.NewMissingFieldError("prompt"))
	} else if len(req.Prompt) > maxPromptLength {
		errors = append(errors, domain.NewInvalidFieldError("prompt",
			fmt.Sprintf("must be at most %d characters", maxPromptLength)))
	}

	if !v.isAllowedQuestionCount(req.NumQuestions) {
		errors = append(errors, domain.NewInvalidFieldError("num_questions",
			fmt.Sprintf("must be one of %v", v.allowedQuestionCounts)))
	}

	if !domain.IsValidDifficulty(req.Difficulty) {
		errors = append(errors, domain.NewInvalidFieldError("difficulty", "must be easy, medium or hard"))
	}

	if req.ChatID != "" && !isValidULID(req.ChatID) {
		errors = append(errors, domain.NewInvalidFieldError("chat_id", "is not a valid id"))
	}

	return errors
}

// ValidateSaveChatRequest validates the chat save request body.
func (v *Validator) ValidateSaveChatRequest(req *dto.SaveChatRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	}
	if len(req.Messages) == 0 {
		errors = append(errors, domain.NewMissingFieldError("messages"))
	}
	if req.ChatID != "" && !isValidULID(req.ChatID) {
		errors = append(errors, domain.NewInvalidFieldError("chat_id", "is not a valid id"))
	}

	return errors
}

// ValidateSubmitAttemptRequest validates a participant submission.
func (v *Validator) ValidateSubmitAttemptRequest(req *dto.SubmitAttemptRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.ParticipantName) == "" {
		errors = append(errors, domain.NewMissingFieldError("participant_name"))
	} else if len(req.ParticipantName) > 100 {
		errors = append(errors, domain.NewInvalidFieldError("participant_name", "must be at most 100 characters"))
	}
	if req.Score < 0 {
		errors = append(errors, domain.NewInvalidFieldError("score", "must not be negative"))
	}

	return errors
}

// ValidateID validates a path id parameter.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFieldError(field, "is not a valid id"))
	}

	return errors
}

func (v *Validator) isAllowedQuestionCount(n int) bool {
	for _, allowed := range v.allowedQuestionCounts {
		if n == allowed {
			return true
		}
	}
	return false
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
