package service

import (
	"context"
	"encoding/json"
	"strings"

	"quizard/internal/domain"
	"quizard/internal/dto"
)

// QuizService persists generated quizzes and handles the participant-facing
// attempt flow.
type QuizService interface {
	SaveQuiz(ctx context.Context, creatorID string, req *dto.SaveQuizRequest) (*dto.SaveQuizResponse, error)
	GetQuiz(ctx context.Context, quizID string, requesterID string) (*dto.QuizSetResponse, error)
	GetMyQuizzes(ctx context.Context, creatorID string) ([]dto.QuizSetSummary, error)
	UpdateQuiz(ctx context.Context, quizID, creatorID string, req *dto.UpdateQuizRequest) error
	DeleteQuiz(ctx context.Context, quizID, creatorID string) error
	UpdateSettings(ctx context.Context, quizID, creatorID string, req *dto.UpdateQuizSettingsRequest) error
	SubmitAttempt(ctx context.Context, quizID string, userID string, req *dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error)
}

type quizServiceImpl struct {
	quizRepo    domain.QuizSetRepository
	attemptRepo domain.QuizAttemptRepository
}

// NewQuizService creates a new instance of QuizService.
func NewQuizService(quizRepo domain.QuizSetRepository, attemptRepo domain.QuizAttemptRepository) QuizService {
	return &quizServiceImpl{quizRepo: quizRepo, attemptRepo: attemptRepo}
}

func toDomainQuestions(payloads []dto.QuestionPayload) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, len(payloads))
	for _, p := range payloads {
		q := domain.Question{Question: p.Question, Options: p.Options, Answer: p.Answer}
		if err := q.Validate(); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func toQuestionPayloads(questions []domain.Question) []dto.QuestionPayload {
	payloads := make([]dto.QuestionPayload, 0, len(questions))
	for _, q := range questions {
		payloads = append(payloads, dto.QuestionPayload{Question: q.Question, Options: q.Options, Answer: q.Answer})
	}
	return payloads
}

// SaveQuiz stores a generated quiz as a draft owned by the creator. The
// questions are re-validated at the boundary; a client cannot persist a
// quiz the generation contract would have rejected.
func (s *quizServiceImpl) SaveQuiz(ctx context.Context, creatorID string, req *dto.SaveQuizRequest) (*dto.SaveQuizResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, domain.NewMissingTitleError()
	}
	if len(req.Questions) == 0 {
		return nil, domain.NewError(domain.CodeValidation, "quiz must have at least one question", nil)
	}

	questions, err := toDomainQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	set := &domain.QuizSet{
		CreatorID: creatorID,
		Title:     req.Title,
		Questions: questions,
	}
	if err := s.quizRepo.SaveQuizSet(ctx, set); err != nil {
		return nil, err
	}
	return &dto.SaveQuizResponse{QuizID: set.ID}, nil
}

// GetQuiz returns a quiz set. Drafts are visible to their creator only;
// published sets are readable by anyone, but the settings document stays
// creator-only.
func (s *quizServiceImpl) GetQuiz(ctx context.Context, quizID string, requesterID string) (*dto.QuizSetResponse, error) {
	set, err := s.quizRepo.GetQuizSetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	isCreator := requesterID != "" && requesterID == set.CreatorID
	if set.Status != domain.QuizStatusPublished && !isCreator {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	resp := &dto.QuizSetResponse{
		ID:        set.ID,
		Title:     set.Title,
		CreatorID: set.CreatorID,
		Status:    set.Status,
		Questions: toQuestionPayloads(set.Questions),
	}
	if isCreator {
		resp.Settings = set.Settings
	}
	return resp, nil
}

func (s *quizServiceImpl) GetMyQuizzes(ctx context.Context, creatorID string) ([]dto.QuizSetSummary, error) {
	sets, err := s.quizRepo.GetQuizSetsByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.QuizSetSummary, 0, len(sets))
	for _, set := range sets {
		summaries = append(summaries, dto.QuizSetSummary{
			ID:        set.ID,
			Title:     set.Title,
			Status:    set.Status,
			CreatedAt: set.CreatedAt,
		})
	}
	return summaries, nil
}

// UpdateQuiz replaces the title and questions of a quiz set owned by the
// creator. Edited questions pass the same invariants as generated ones.
func (s *quizServiceImpl) UpdateQuiz(ctx context.Context, quizID, creatorID string, req *dto.UpdateQuizRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return domain.NewMissingTitleError()
	}
	if len(req.Questions) == 0 {
		return domain.NewError(domain.CodeValidation, "quiz must have at least one question", nil)
	}

	questions, err := toDomainQuestions(req.Questions)
	if err != nil {
		return err
	}
	return s.quizRepo.UpdateQuizSet(ctx, quizID, creatorID, req.Title, questions)
}

func (s *quizServiceImpl) DeleteQuiz(ctx context.Context, quizID, creatorID string) error {
	return s.quizRepo.DeleteQuizSet(ctx, quizID, creatorID)
}

// UpdateSettings replaces the settings document and status of a quiz set.
func (s *quizServiceImpl) UpdateSettings(ctx context.Context, quizID, creatorID string, req *dto.UpdateQuizSettingsRequest) error {
	status := req.Status
	if status == "" {
		status = domain.QuizStatusDraft
	}
	if status != domain.QuizStatusDraft && status != domain.QuizStatusPublished {
		return domain.NewError(domain.CodeValidation, "status must be draft or published", nil)
	}
	settings := req.Settings
	if len(settings) == 0 {
		settings = json.RawMessage(`{}`)
	}
	return s.quizRepo.UpdateQuizSetSettings(ctx, quizID, creatorID, settings, status)
}

// SubmitAttempt records a participant run against a published quiz set.
// Anonymous participants are allowed; userID is empty for them.
func (s *quizServiceImpl) SubmitAttempt(ctx context.Context, quizID string, userID string, req *dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error) {
	set, err := s.quizRepo.GetQuizSetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if set.Status != domain.QuizStatusPublished {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	if req.Score > len(set.Questions) {
		return nil, domain.NewError(domain.CodeValidation, "score exceeds question count", nil)
	}

	participantName := strings.TrimSpace(req.ParticipantName)

	// Settings is an opaque front-end document; only the keys the backend
	// enforces are decoded, unknown keys pass through untouched.
	var settings struct {
		OneAttemptPerPerson bool `json:"oneAttemptPerPerson"`
	}
	if len(set.Settings) > 0 {
		_ = json.Unmarshal(set.Settings, &settings)
	}
	if settings.OneAttemptPerPerson {
		count, err := s.attemptRepo.CountAttemptsByParticipant(ctx, quizID, participantName)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, domain.NewForbiddenError("This quiz allows one attempt per participant")
		}
	}

	attempt := &domain.QuizAttempt{
		QuizSetID:        quizID,
		UserID:           userID,
		ParticipantName:  participantName,
		Score:            req.Score,
		SubmittedAnswers: req.SubmittedAnswers,
	}
	if err := s.attemptRepo.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}
	return &dto.SubmitAttemptResponse{AttemptID: attempt.ID}, nil
}
