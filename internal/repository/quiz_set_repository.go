package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizard/internal/domain"
	"quizard/internal/repository/models"
	"quizard/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizSetRepository implements domain.QuizSetRepository.
type sqlxQuizSetRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizSetRepository creates a new instance of sqlxQuizSetRepository.
func NewSQLXQuizSetRepository(db *sqlx.DB) domain.QuizSetRepository {
	return &sqlxQuizSetRepository{db: db}
}

func toDomainQuizSet(m *models.QuizSet) (*domain.QuizSet, error) {
	var questions []domain.Question
	if len(m.Questions) > 0 {
		if err := json.Unmarshal(m.Questions, &questions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quiz questions: %w", err)
		}
	}
	return &domain.QuizSet{
		ID:        m.ID,
		CreatorID: m.CreatorID,
		Title:     m.Title,
		Questions: questions,
		Settings:  m.Settings,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func fromDomainQuizSet(s *domain.QuizSet) (*models.QuizSet, error) {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quiz questions: %w", err)
	}
	settings := s.Settings
	if len(settings) == 0 {
		settings = json.RawMessage(`{}`)
	}
	return &models.QuizSet{
		ID:        s.ID,
		CreatorID: s.CreatorID,
		Title:     s.Title,
		Questions: questions,
		Settings:  settings,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}, nil
}

// SaveQuizSet inserts a new quiz set row.
func (r *sqlxQuizSetRepository) SaveQuizSet(ctx context.Context, set *domain.QuizSet) error {
	if set.ID == "" {
		set.ID = util.NewULID()
	}
	if set.Status == "" {
		set.Status = domain.QuizStatusDraft
	}
	set.CreatedAt = time.Now()
	set.UpdatedAt = time.Now()

	model, err := fromDomainQuizSet(set)
	if err != nil {
		return err
	}

	query := `INSERT INTO quiz_sets (id, creator_id, title, questions, settings, status, created_at, updated_at)
	          VALUES (:id, :creator_id, :title, :questions, :settings, :status, :created_at, :updated_at)`

	_, err = sqlx.NamedExecContext(ctx, GetExecutor(ctx, r.db), query, model)
	if err != nil {
		return fmt.Errorf("failed to save quiz set: %w", err)
	}
	return nil
}

// GetQuizSetByID retrieves a quiz set by its ID. Access is not scoped here:
// published quiz sets are readable by any participant, so ownership checks
// belong to the service layer.
func (r *sqlxQuizSetRepository) GetQuizSetByID(ctx context.Context, id string) (*domain.QuizSet, error) {
	var model models.QuizSet
	query := `SELECT id, creator_id, title, questions, settings, status, created_at, updated_at
	          FROM quiz_sets WHERE id = $1`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &model, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewQuizNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get quiz set: %w", err)
	}
	return toDomainQuizSet(&model)
}

// GetQuizSetsByCreator lists quiz sets owned by the creator, newest first.
func (r *sqlxQuizSetRepository) GetQuizSetsByCreator(ctx context.Context, creatorID string) ([]*domain.QuizSet, error) {
	var rows []models.QuizSet
	query := `SELECT id, creator_id, title, questions, settings, status, created_at, updated_at
	          FROM quiz_sets WHERE creator_id = $1 ORDER BY created_at DESC`

	err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz sets: %w", err)
	}

	sets := make([]*domain.QuizSet, 0, len(rows))
	for i := range rows {
		set, err := toDomainQuizSet(&rows[i])
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// DeleteQuizSet removes a quiz set owned by the creator. Attempts cascade
// at the schema level.
func (r *sqlxQuizSetRepository) DeleteQuizSet(ctx context.Context, id, creatorID string) error {
	query := `DELETE FROM quiz_sets WHERE id = $1 AND creator_id = $2`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, id, creatorID)
	if err != nil {
		return fmt.Errorf("failed to delete quiz set: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewQuizNotFoundError(id)
	}
	return nil
}

// UpdateQuizSet replaces the title and questions of a quiz set owned by the
// creator. Settings and status are untouched; they have their own update path.
func (r *sqlxQuizSetRepository) UpdateQuizSet(ctx context.Context, id, creatorID, title string, questions []domain.Question) error {
	payload, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz questions: %w", err)
	}

	query := `UPDATE quiz_sets SET title = $1, questions = $2, updated_at = $3
	          WHERE id = $4 AND creator_id = $5`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, title, payload, time.Now(), id, creatorID)
	if err != nil {
		return fmt.Errorf("failed to update quiz set: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewQuizNotFoundError(id)
	}
	return nil
}

// UpdateQuizSetSettings replaces the settings document and status of a quiz
// set owned by the creator.
func (r *sqlxQuizSetRepository) UpdateQuizSetSettings(ctx context.Context, id, creatorID string, settings json.RawMessage, status string) error {
	query := `UPDATE quiz_sets SET settings = $1, status = $2, updated_at = $3
	          WHERE id = $4 AND creator_id = $5`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, settings, status, time.Now(), id, creatorID)
	if err != nil {
		return fmt.Errorf("failed to update quiz set settings: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewQuizNotFoundError(id)
	}
	return nil
}
