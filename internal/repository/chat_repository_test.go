package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"quizard/internal/domain"
	"quizard/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChat(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXChatRepository(db)

	chat := &domain.Chat{
		UserID: util.NewULID(),
		Title:  "Kubernetes basics",
		History: []domain.Message{
			domain.NewUserMessage("Make a quiz about pods"),
		},
	}

	mock.ExpectExec(`INSERT INTO chats`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateChat(context.Background(), chat)

	assert.NoError(t, err)
	assert.NotEmpty(t, chat.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateChat_MissingTitle(t *testing.T) {
	db, _ := setupUserTestDB(t)
	repo := NewSQLXChatRepository(db)

	chat := &domain.Chat{UserID: util.NewULID()}

	err := repo.CreateChat(context.Background(), chat)

	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestGetChatByID(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXChatRepository(db)

	now := time.Now()
	chatID := util.NewULID()
	userID := util.NewULID()

	history, err := json.Marshal([]domain.Message{
		{Role: domain.RoleUser, Type: domain.MessageTypeText, Content: domain.MessageContent{Text: "hello"}},
		{Role: domain.RoleAssistant, Type: domain.MessageTypeText, Content: domain.MessageContent{Text: "hi there"}},
	})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "history", "created_at", "updated_at"}).
		AddRow(chatID, userID, "Greetings", history, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM chats WHERE id = $1 AND user_id = $2`)).
		WithArgs(chatID, userID).
		WillReturnRows(rows)

	chat, err := repo.GetChatByID(context.Background(), chatID, userID)

	require.NoError(t, err)
	require.NotNil(t, chat)
	assert.Equal(t, "Greetings", chat.Title)
	require.Len(t, chat.History, 2)
	assert.Equal(t, domain.RoleAssistant, chat.History[1].Role)
	assert.Equal(t, "hi there", chat.History[1].Content.Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetChatByID_NotFound(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXChatRepository(db)

	chatID := util.NewULID()
	userID := util.NewULID()

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "history", "created_at", "updated_at"})

	mock.ExpectQuery(regexp.QuoteMeta(`FROM chats WHERE id = $1 AND user_id = $2`)).
		WithArgs(chatID, userID).
		WillReturnRows(rows)

	chat, err := repo.GetChatByID(context.Background(), chatID, userID)

	assert.Nil(t, chat)
	assert.True(t, domain.IsCode(err, domain.CodeChatNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateChat_OtherUsersChat(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXChatRepository(db)

	chat := &domain.Chat{
		ID:     util.NewULID(),
		UserID: util.NewULID(),
		Title:  "Renamed",
	}

	// No row matches when the chat belongs to someone else.
	mock.ExpectExec(`UPDATE chats SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateChat(context.Background(), chat)

	assert.True(t, domain.IsCode(err, domain.CodeChatNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteChat(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXChatRepository(db)

	chatID := util.NewULID()
	userID := util.NewULID()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM chats WHERE id = $1 AND user_id = $2`)).
		WithArgs(chatID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteChat(context.Background(), chatID, userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
