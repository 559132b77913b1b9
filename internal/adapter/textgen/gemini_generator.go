package textgen

import (
	"context"
	"fmt"
	"time"

	"quizard/internal/config"
	"quizard/internal/domain"
	"quizard/internal/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// GeminiGenerator implements domain.TextGenerator against the Google AI
// (Gemini) API through langchaingo, with the model configured for
// JSON-only output.
type GeminiGenerator struct {
	llm         llms.Model
	temperature float64
	timeout     time.Duration
	maxRetries  int
}

// NewGeminiGenerator creates a new GeminiGenerator.
func NewGeminiGenerator(ctx context.Context, geminiCfg config.GeminiConfig, genCfg config.GenerationConfig) (*GeminiGenerator, error) {
	if geminiCfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(geminiCfg.APIKey),
		googleai.WithDefaultModel(geminiCfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{
		llm:         llm,
		temperature: geminiCfg.Temperature,
		timeout:     genCfg.Timeout,
		maxRetries:  genCfg.MaxRetries,
	}, nil
}

// GenerateText submits the compiled instruction document and returns the
// raw text response. Transient transport failures are retried with
// exponential backoff up to the configured attempt count; the per-call
// timeout bounds each attempt.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	var response string

	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		res, err := llms.GenerateFromSinglePrompt(callCtx, g.llm, prompt,
			llms.WithTemperature(g.temperature),
			llms.WithJSONMode(),
		)
		if err != nil {
			logger.Get().Warn("Model invocation attempt failed", zap.Error(err))
			return err
		}
		response = res
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(g.maxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", domain.NewModelInvocationError(err)
	}
	return response, nil
}

var _ domain.TextGenerator = (*GeminiGenerator)(nil)
