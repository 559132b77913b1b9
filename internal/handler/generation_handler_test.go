package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"quizard/internal/config"
	"quizard/internal/domain"
	"quizard/internal/dto"
	"quizard/internal/logger"
	"quizard/internal/middleware"
	"quizard/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error", Env: "test"}); err != nil {
		log.Fatalf("Failed to initialize logger for handler tests: %v", err)
	}
	code := m.Run()
	_ = logger.Sync()
	os.Exit(code)
}

// MockGenerationService implements service.GenerationService.
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(ctx context.Context, userID string, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationResult), args.Error(1)
}

// MockChatService implements service.ChatService.
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) SaveChat(ctx context.Context, userID string, req *dto.SaveChatRequest) (*dto.SaveChatResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SaveChatResponse), args.Error(1)
}

func (m *MockChatService) GetChat(ctx context.Context, chatID, userID string) (*dto.ChatResponse, error) {
	args := m.Called(ctx, chatID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChatResponse), args.Error(1)
}

func (m *MockChatService) GetChats(ctx context.Context, userID string) ([]dto.ChatSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ChatSummary), args.Error(1)
}

func (m *MockChatService) DeleteChat(ctx context.Context, chatID, userID string) error {
	args := m.Called(ctx, chatID, userID)
	return args.Error(0)
}

func setupGenerateApp(genService *MockGenerationService, chatService *MockChatService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	validator := validation.NewValidator([]int{3, 5, 10, 15, 20})
	h := NewGenerationHandler(genService, chatService, validator)

	// Stands in for the auth middleware.
	app.Post("/api/generate", func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, "user-1")
		return c.Next()
	}, h.Generate)
	return app
}

func postGenerate(t *testing.T, app *fiber.App, body dto.GenerateRequest) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeGenerateResponse(t *testing.T, resp *http.Response) dto.GenerateResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.GenerateResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestGenerateEndpoint_Quiz(t *testing.T) {
	genService := new(MockGenerationService)
	chatService := new(MockChatService)
	app := setupGenerateApp(genService, chatService)

	genService.On("Generate", mock.Anything, "user-1", mock.MatchedBy(func(r *domain.GenerationRequest) bool {
		return r.Prompt == "Quiz me on planets" && r.QuestionCount == 5 && !r.Stateful()
	})).Return(&domain.GenerationResult{
		Kind: domain.ResultQuizGenerated,
		Quiz: &domain.Quiz{
			Title: "Planets",
			Questions: []domain.Question{
				{Question: "Q1", Options: []string{"a", "b", "c", "d"}, Answer: "a"},
			},
		},
		NewBalance: 40,
	}, nil)

	resp := postGenerate(t, app, dto.GenerateRequest{
		Prompt:       "Quiz me on planets",
		Title:        "Planets",
		NumQuestions: 5,
		Difficulty:   "medium",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeGenerateResponse(t, resp)
	assert.Equal(t, "quiz", out.Type)
	require.NotNil(t, out.Quiz)
	assert.Equal(t, 40, out.NewBalance)
	assert.Empty(t, out.Warning)
}

func TestGenerateEndpoint_InsufficientCoins(t *testing.T) {
	genService := new(MockGenerationService)
	chatService := new(MockChatService)
	app := setupGenerateApp(genService, chatService)

	genService.On("Generate", mock.Anything, "user-1", mock.Anything).
		Return(nil, domain.NewInsufficientCoinsError(5, 10))

	resp := postGenerate(t, app, dto.GenerateRequest{
		Prompt:       "Quiz me on planets",
		Title:        "Planets",
		NumQuestions: 5,
		Difficulty:   "medium",
	})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGenerateEndpoint_ValidationFailure(t *testing.T) {
	genService := new(MockGenerationService)
	chatService := new(MockChatService)
	app := setupGenerateApp(genService, chatService)

	resp := postGenerate(t, app, dto.GenerateRequest{
		Prompt:       "",
		NumQuestions: 7,
		Difficulty:   "impossible",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	genService.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateEndpoint_ModelUnreachable(t *testing.T) {
	genService := new(MockGenerationService)
	chatService := new(MockChatService)
	app := setupGenerateApp(genService, chatService)

	genService.On("Generate", mock.Anything, "user-1", mock.Anything).
		Return(nil, domain.NewModelInvocationError(io.ErrUnexpectedEOF))

	resp := postGenerate(t, app, dto.GenerateRequest{
		Prompt:       "Quiz me on planets",
		Title:        "Planets",
		NumQuestions: 5,
		Difficulty:   "medium",
	})

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGenerateEndpoint_LedgerFailureStillReturnsContent(t *testing.T) {
	genService := new(MockGenerationService)
	chatService := new(MockChatService)
	app := setupGenerateApp(genService, chatService)

	result := &domain.GenerationResult{
		Kind: domain.ResultQuizGenerated,
		Quiz: &domain.Quiz{
			Title: "Planets",
			Questions: []domain.Question{
				{Question: "Q1", Options: []string{"a", "b", "c", "d"}, Answer: "a"},
			},
		},
		NewBalance:   50,
		ChargeFailed: true,
	}
	genService.On("Generate", mock.Anything, "user-1", mock.Anything).
		Return(result, domain.NewLedgerUpdateFailedError(io.ErrUnexpectedEOF))

	resp := postGenerate(t, app, dto.GenerateRequest{
		Prompt:       "Quiz me on planets",
		Title:        "Planets",
		NumQuestions: 5,
		Difficulty:   "medium",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeGenerateResponse(t, resp)
	require.NotNil(t, out.Quiz)
	assert.NotEmpty(t, out.Warning)
}

func TestGenerateEndpoint_ChatHistoryFeedsStatefulMode(t *testing.T) {
	genService := new(MockGenerationService)
	chatService := new(MockChatService)
	app := setupGenerateApp(genService, chatService)

	chatID := "01HZXW5N8PJD1G5F7Q2R3T4V5B"
	chatService.On("GetChat", mock.Anything, chatID, "user-1").Return(&dto.ChatResponse{
		ID:      chatID,
		Title:   "Gravity chat",
		History: []domain.Message{domain.NewUserMessage("what is gravity?")},
	}, nil)
	genService.On("Generate", mock.Anything, "user-1", mock.MatchedBy(func(r *domain.GenerationRequest) bool {
		return r.Stateful() && r.Title == "Gravity chat"
	})).Return(&domain.GenerationResult{
		Kind:       domain.ResultConversational,
		Message:    "Gravity pulls objects together.",
		NewBalance: 30,
	}, nil)

	resp := postGenerate(t, app, dto.GenerateRequest{
		Prompt:       "tell me more",
		NumQuestions: 5,
		Difficulty:   "easy",
		ChatID:       chatID,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeGenerateResponse(t, resp)
	assert.Equal(t, "message", out.Type)
	chatService.AssertExpectations(t)
}
