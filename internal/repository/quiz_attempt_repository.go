package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quizard/internal/domain"
	"quizard/internal/repository/models"
	"quizard/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizAttemptRepository implements domain.QuizAttemptRepository.
type sqlxQuizAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizAttemptRepository creates a new instance of sqlxQuizAttemptRepository.
func NewSQLXQuizAttemptRepository(db *sqlx.DB) domain.QuizAttemptRepository {
	return &sqlxQuizAttemptRepository{db: db}
}

func toDomainAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	return &domain.QuizAttempt{
		ID:               m.ID,
		QuizSetID:        m.QuizSetID,
		UserID:           m.UserID.String,
		ParticipantName:  m.ParticipantName,
		Score:            m.Score,
		SubmittedAnswers: m.SubmittedAnswers,
		CreatedAt:        m.CreatedAt,
	}
}

func fromDomainAttempt(a *domain.QuizAttempt) *models.QuizAttempt {
	m := &models.QuizAttempt{
		ID:               a.ID,
		QuizSetID:        a.QuizSetID,
		ParticipantName:  a.ParticipantName,
		Score:            a.Score,
		SubmittedAnswers: a.SubmittedAnswers,
		CreatedAt:        a.CreatedAt,
	}
	if a.UserID != "" {
		m.UserID = sql.NullString{String: a.UserID, Valid: true}
	}
	return m
}

// CreateAttempt inserts a participant attempt.
func (r *sqlxQuizAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	attempt.CreatedAt = time.Now()

	query := `INSERT INTO quiz_attempts (id, quiz_set_id, user_id, participant_name, score, submitted_answers, created_at)
	          VALUES (:id, :quiz_set_id, :user_id, :participant_name, :score, :submitted_answers, :created_at)`

	_, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, r.db), query, fromDomainAttempt(attempt))
	if err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	return nil
}

// GetAttemptsByQuizSet lists attempts for a quiz set, newest first.
func (r *sqlxQuizAttemptRepository) GetAttemptsByQuizSet(ctx context.Context, quizSetID string) ([]*domain.QuizAttempt, error) {
	var rows []models.QuizAttempt
	query := `SELECT id, quiz_set_id, user_id, participant_name, score, submitted_answers, created_at
	          FROM quiz_attempts WHERE quiz_set_id = $1 ORDER BY created_at DESC`

	err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, quizSetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	attempts := make([]*domain.QuizAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toDomainAttempt(&rows[i]))
	}
	return attempts, nil
}

// CountAttemptsByParticipant counts how many times a participant name has
// attempted a quiz set. Used to enforce per-participant attempt limits from
// the quiz settings.
func (r *sqlxQuizAttemptRepository) CountAttemptsByParticipant(ctx context.Context, quizSetID, participantName string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM quiz_attempts WHERE quiz_set_id = $1 AND participant_name = $2`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &count, query, quizSetID, participantName)
	if err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return count, nil
}
