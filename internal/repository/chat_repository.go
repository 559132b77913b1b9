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

// sqlxChatRepository implements domain.ChatRepository. The conversation
// history is stored as a single JSONB column; the full history is rewritten
// on every update.
type sqlxChatRepository struct {
	db *sqlx.DB
}

// NewSQLXChatRepository creates a new instance of sqlxChatRepository.
func NewSQLXChatRepository(db *sqlx.DB) domain.ChatRepository {
	return &sqlxChatRepository{db: db}
}

func toDomainChat(m *models.Chat) (*domain.Chat, error) {
	var history []domain.Message
	if len(m.History) > 0 {
		if err := json.Unmarshal(m.History, &history); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chat history: %w", err)
		}
	}
	return &domain.Chat{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		History:   history,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func fromDomainChat(c *domain.Chat) (*models.Chat, error) {
	history, err := json.Marshal(c.History)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat history: %w", err)
	}
	return &models.Chat{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     c.Title,
		History:   history,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

// CreateChat inserts a new chat row with its initial history.
func (r *sqlxChatRepository) CreateChat(ctx context.Context, chat *domain.Chat) error {
	if err := chat.Validate(); err != nil {
		return err
	}
	if chat.ID == "" {
		chat.ID = util.NewULID()
	}
	chat.CreatedAt = time.Now()
	chat.UpdatedAt = time.Now()

	model, err := fromDomainChat(chat)
	if err != nil {
		return err
	}

	query := `INSERT INTO chats (id, user_id, title, history, created_at, updated_at)
	          VALUES (:id, :user_id, :title, :history, :created_at, :updated_at)`

	_, err = sqlx.NamedExecContext(ctx, GetExecutor(ctx, r.db), query, model)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

// UpdateChat rewrites the title and full history of an existing chat. The
// user scope in the WHERE clause keeps one user from touching another's chat.
func (r *sqlxChatRepository) UpdateChat(ctx context.Context, chat *domain.Chat) error {
	if err := chat.Validate(); err != nil {
		return err
	}
	chat.UpdatedAt = time.Now()

	model, err := fromDomainChat(chat)
	if err != nil {
		return err
	}

	query := `UPDATE chats SET title = :title, history = :history, updated_at = :updated_at
	          WHERE id = :id AND user_id = :user_id`

	result, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, r.db), query, model)
	if err != nil {
		return fmt.Errorf("failed to update chat: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewChatNotFoundError(chat.ID)
	}
	return nil
}

// GetChatByID retrieves one chat owned by the given user.
func (r *sqlxChatRepository) GetChatByID(ctx context.Context, chatID, userID string) (*domain.Chat, error) {
	var model models.Chat
	query := `SELECT id, user_id, title, history, created_at, updated_at
	          FROM chats WHERE id = $1 AND user_id = $2`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &model, query, chatID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewChatNotFoundError(chatID)
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	return toDomainChat(&model)
}

// GetChatsByUser lists a user's chats, most recently updated first.
func (r *sqlxChatRepository) GetChatsByUser(ctx context.Context, userID string) ([]*domain.Chat, error) {
	var rows []models.Chat
	query := `SELECT id, user_id, title, history, created_at, updated_at
	          FROM chats WHERE user_id = $1 ORDER BY updated_at DESC`

	err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	chats := make([]*domain.Chat, 0, len(rows))
	for i := range rows {
		chat, err := toDomainChat(&rows[i])
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, nil
}

// DeleteChat removes a chat owned by the given user.
func (r *sqlxChatRepository) DeleteChat(ctx context.Context, chatID, userID string) error {
	query := `DELETE FROM chats WHERE id = $1 AND user_id = $2`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, chatID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewChatNotFoundError(chatID)
	}
	return nil
}
