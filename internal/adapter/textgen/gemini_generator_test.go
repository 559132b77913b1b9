package textgen

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"quizard/internal/config"
	"quizard/internal/domain"
	"quizard/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// stubModel fails a fixed number of times before answering.
type stubModel struct {
	failures int
	calls    int
	response string
}

func (s *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, errors.New("transient upstream error")
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: s.response}},
	}, nil
}

func (s *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	res, err := s.GenerateContent(ctx, nil, options...)
	if err != nil {
		return "", err
	}
	return res.Choices[0].Content, nil
}

func newTestGenerator(model llms.Model, maxRetries int) *GeminiGenerator {
	return &GeminiGenerator{
		llm:         model,
		temperature: 0.4,
		timeout:     time.Second,
		maxRetries:  maxRetries,
	}
}

func TestGenerateText_Success(t *testing.T) {
	model := &stubModel{response: `[{"message":"hi","question":null,"options":null,"answer":null}]`}
	gen := newTestGenerator(model, 2)

	out, err := gen.GenerateText(context.Background(), "instruction document")
	require.NoError(t, err)
	assert.Equal(t, model.response, out)
	assert.Equal(t, 1, model.calls)
}

func TestGenerateText_RetriesTransientFailures(t *testing.T) {
	model := &stubModel{failures: 2, response: `{"type":"message"}`}
	gen := newTestGenerator(model, 3)

	out, err := gen.GenerateText(context.Background(), "instruction document")
	require.NoError(t, err)
	assert.Equal(t, model.response, out)
	assert.Equal(t, 3, model.calls)
}

func TestGenerateText_ExhaustedRetries(t *testing.T) {
	model := &stubModel{failures: 10}
	gen := newTestGenerator(model, 1)

	_, err := gen.GenerateText(context.Background(), "instruction document")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeModelInvocationError))
	assert.Equal(t, 2, model.calls) // initial attempt + one retry
}

func TestNewGeminiGenerator_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(),
		config.GeminiConfig{APIKey: ""},
		config.GenerationConfig{Timeout: time.Second},
	)
	assert.Error(t, err)
}
