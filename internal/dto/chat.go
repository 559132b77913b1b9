package dto

import (
	"time"

	"quizard/internal/domain"
)

// SaveChatRequest inserts a new chat or, when ChatID is set, replaces the
// history of an existing one.
// @Description Request body for saving a chat
type SaveChatRequest struct {
	ChatID   string           `json:"chat_id,omitempty"`
	Title    string           `json:"title"`
	Messages []domain.Message `json:"messages"`
}

// SaveChatResponse returns the id of the stored chat.
type SaveChatResponse struct {
	ChatID string `json:"chat_id"`
}

// ChatSummary is one row in the user's chat list.
type ChatSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatResponse is a full chat with its message history.
type ChatResponse struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	History []domain.Message `json:"history"`
}
