package service

import (
	"context"
	"strings"

	"quizard/internal/config"
	"quizard/internal/domain"
	"quizard/internal/logger"

	"go.uber.org/zap"
)

// GenerationService runs the generation contract end to end: entitlement
// gate, prompt compilation, model invocation, response validation, and the
// coin charge.
type GenerationService interface {
	Generate(ctx context.Context, userID string, req *domain.GenerationRequest) (*domain.GenerationResult, error)
}

// Each call is independent; the service holds no per-request state.
type generationServiceImpl struct {
	userRepo  domain.UserRepository
	generator domain.TextGenerator
	compiler  *PromptCompiler
	validator *ResponseValidator
	cfg       config.GenerationConfig
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(
	userRepo domain.UserRepository,
	generator domain.TextGenerator,
	compiler *PromptCompiler,
	validator *ResponseValidator,
	cfg config.GenerationConfig,
) GenerationService {
	return &generationServiceImpl{
		userRepo:  userRepo,
		generator: generator,
		compiler:  compiler,
		validator: validator,
		cfg:       cfg,
	}
}

// Generate performs one generation call for the given principal.
//
// The gate runs before any model traffic: an empty prompt or an
// insufficient balance returns immediately without invoking the model.
// The charge runs only after validation succeeds. Losing the conditional
// decrement to a concurrent spend discards the content and reports an
// insufficient balance. Any other charge failure still returns the
// validated content alongside the error, with ChargeFailed set, so paid
// value is never silently discarded.
func (s *generationServiceImpl) Generate(ctx context.Context, userID string, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	log := logger.Get()

	if strings.TrimSpace(req.Prompt) == "" {
		return nil, domain.NewEmptyPromptError()
	}

	balance, err := s.userRepo.GetCoinBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < s.cfg.CoinCost {
		log.Info("Generation rejected: insufficient coins",
			zap.String("userID", userID),
			zap.Int("balance", balance),
			zap.Int("cost", s.cfg.CoinCost))
		return nil, domain.NewInsufficientCoinsError(balance, s.cfg.CoinCost)
	}

	prompt := s.compiler.Compile(req)

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result, err := s.validator.Validate(req, raw)
	if err != nil {
		log.Warn("Model response rejected by validator",
			zap.String("userID", userID),
			zap.Error(err))
		return nil, err
	}

	newBalance, err := s.userRepo.DeductCoins(ctx, userID, s.cfg.CoinCost)
	if err != nil {
		if domain.IsCode(err, domain.CodeInsufficientCoins) {
			// A concurrent request spent the balance between the gate and
			// the charge. The content is discarded; only a paid-for result
			// leaves the service.
			log.Info("Generation discarded: balance spent concurrently",
				zap.String("userID", userID),
				zap.Int("cost", s.cfg.CoinCost))
			return nil, err
		}
		// Generation succeeded but the charge did not persist. Return the
		// content anyway, flagged, so the caller can decide what to honor.
		log.Error("Coin deduction failed after successful generation",
			zap.String("userID", userID),
			zap.Error(err))
		result.ChargeFailed = true
		result.NewBalance = balance
		return result, domain.NewLedgerUpdateFailedError(err)
	}

	result.NewBalance = newBalance
	log.Info("Generation completed",
		zap.String("userID", userID),
		zap.String("kind", string(result.Kind)),
		zap.Int("newBalance", newBalance))
	return result, nil
}
