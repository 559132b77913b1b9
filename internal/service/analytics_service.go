package service

import (
	"context"
	"sync"

	"quizard/internal/domain"
	"quizard/internal/dto"

	"golang.org/x/sync/errgroup"
)

// AnalyticsService aggregates attempt data for creators.
type AnalyticsService interface {
	GetQuizAnalytics(ctx context.Context, quizID, creatorID string) (*dto.QuizAnalyticsResponse, error)
	GetOverview(ctx context.Context, creatorID string) (*dto.OverviewAnalyticsResponse, error)
}

type analyticsServiceImpl struct {
	quizRepo    domain.QuizSetRepository
	attemptRepo domain.QuizAttemptRepository
}

// NewAnalyticsService creates a new instance of AnalyticsService.
func NewAnalyticsService(quizRepo domain.QuizSetRepository, attemptRepo domain.QuizAttemptRepository) AnalyticsService {
	return &analyticsServiceImpl{quizRepo: quizRepo, attemptRepo: attemptRepo}
}

func averageScore(attempts []*domain.QuizAttempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	total := 0
	for _, a := range attempts {
		total += a.Score
	}
	return float64(total) / float64(len(attempts))
}

// GetQuizAnalytics returns the attempt breakdown of one quiz set. Only the
// creator may see it.
func (s *analyticsServiceImpl) GetQuizAnalytics(ctx context.Context, quizID, creatorID string) (*dto.QuizAnalyticsResponse, error) {
	set, err := s.quizRepo.GetQuizSetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if set.CreatorID != creatorID {
		return nil, domain.NewForbiddenError("only the quiz creator may view its analytics")
	}

	attempts, err := s.attemptRepo.GetAttemptsByQuizSet(ctx, quizID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AttemptItem, 0, len(attempts))
	for _, a := range attempts {
		items = append(items, dto.AttemptItem{
			ParticipantName:  a.ParticipantName,
			Score:            a.Score,
			SubmittedAnswers: a.SubmittedAnswers,
			CreatedAt:        a.CreatedAt,
		})
	}

	return &dto.QuizAnalyticsResponse{
		QuizID:        set.ID,
		Title:         set.Title,
		QuestionCount: len(set.Questions),
		AttemptCount:  len(attempts),
		AverageScore:  averageScore(attempts),
		Attempts:      items,
	}, nil
}

// GetOverview builds the dashboard summary across all of a creator's quiz
// sets. Attempt lists are fetched concurrently, one goroutine per set.
func (s *analyticsServiceImpl) GetOverview(ctx context.Context, creatorID string) (*dto.OverviewAnalyticsResponse, error) {
	sets, err := s.quizRepo.GetQuizSetsByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	stats := make([]dto.OverviewQuizStats, len(sets))
	var mu sync.Mutex
	totalAttempts := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, set := range sets {
		g.Go(func() error {
			attempts, err := s.attemptRepo.GetAttemptsByQuizSet(gctx, set.ID)
			if err != nil {
				return err
			}
			stats[i] = dto.OverviewQuizStats{
				QuizID:        set.ID,
				Title:         set.Title,
				QuestionCount: len(set.Questions),
				AttemptCount:  len(attempts),
				AverageScore:  averageScore(attempts),
			}
			mu.Lock()
			totalAttempts += len(attempts)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.OverviewAnalyticsResponse{
		TotalQuizzes:  len(sets),
		TotalAttempts: totalAttempts,
		Quizzes:       stats,
	}, nil
}
