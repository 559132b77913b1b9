package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Session and entitlement
	CodeUnauthenticated   ErrorCode = "UNAUTHENTICATED"
	CodeForbidden         ErrorCode = "FORBIDDEN"
	CodeInsufficientCoins ErrorCode = "INSUFFICIENT_COINS"

	// Generation contract
	CodeEmptyPrompt          ErrorCode = "EMPTY_PROMPT"
	CodeModelInvocationError ErrorCode = "MODEL_INVOCATION_ERROR"
	CodeInvalidFormat        ErrorCode = "INVALID_FORMAT"
	CodeInvalidSchema        ErrorCode = "INVALID_SCHEMA"
	CodeMissingTitle         ErrorCode = "MISSING_TITLE"
	CodeLedgerUpdateFailed   ErrorCode = "LEDGER_UPDATE_FAILED"

	// Persistence
	CodeChatNotFound ErrorCode = "CHAT_NOT_FOUND"
	CodeQuizNotFound ErrorCode = "QUIZ_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether err is a DomainError with the given code.
func IsCode(err error, code ErrorCode) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}

// Helper constructors for common errors

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewUnauthenticatedError(message string) *DomainError {
	return NewError(CodeUnauthenticated, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewInsufficientCoinsError(balance, cost int) *DomainError {
	return NewError(CodeInsufficientCoins,
		fmt.Sprintf("Insufficient coins: balance %d, %d required", balance, cost), nil)
}

func NewEmptyPromptError() *DomainError {
	return NewError(CodeEmptyPrompt, "Prompt must not be empty", nil)
}

func NewModelInvocationError(cause error) *DomainError {
	return NewError(CodeModelInvocationError, "Failed to call the generation model", cause)
}

func NewInvalidFormatError(cause error) *DomainError {
	return NewError(CodeInvalidFormat, "Model response is not valid JSON", cause)
}

func NewInvalidSchemaError(message string) *DomainError {
	return NewError(CodeInvalidSchema, message, nil)
}

func NewMissingTitleError() *DomainError {
	return NewError(CodeMissingTitle, "A quiz was generated but no title was supplied", nil)
}

func NewLedgerUpdateFailedError(cause error) *DomainError {
	return NewError(CodeLedgerUpdateFailed,
		"Generation succeeded but the coin deduction could not be persisted", cause)
}

func NewChatNotFoundError(chatID string) *DomainError {
	return NewError(CodeChatNotFound, fmt.Sprintf("Chat not found: %s", chatID), nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found: %s", quizID), nil)
}

// ValidationError represents a single request-field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates per-field validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFieldError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}
