package domain

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Message roles and variants as stored in a chat history.
const (
	RoleUser      = "user"
	RoleAssistant = "ai"

	MessageTypeText = "message"
	MessageTypeQuiz = "quiz"
)

// MessagePart is one element of an assistant message's content array:
// either a plain reply (only Message set) or a full question object.
type MessagePart struct {
	Message  string   `json:"message,omitempty"`
	Question string   `json:"question,omitempty"`
	Options  []string `json:"options,omitempty"`
	Answer   string   `json:"answer,omitempty"`
}

// MessageContent is the payload of a Message. User messages carry a bare
// string; assistant messages carry an array of parts. The custom JSON
// handling preserves whichever shape was stored.
type MessageContent struct {
	Text  string
	Parts []MessagePart
}

func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = s
		c.Parts = nil
		return nil
	}
	var parts []MessagePart
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	c.Text = ""
	c.Parts = parts
	return nil
}

func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.Parts != nil {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

// Message is one unit of conversation. Messages are chronological and
// immutable once appended to a chat history.
type Message struct {
	Role    string         `json:"role"`
	Type    string         `json:"type"`
	Content MessageContent `json:"content"`
}

// NewUserMessage builds a plain user message.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Type: MessageTypeText, Content: MessageContent{Text: text}}
}

// RenderText projects the message to plain text for prompt context.
// Structured quiz payloads are flattened to their question texts so the
// model receives conversation history, never nested JSON.
func (m Message) RenderText() string {
	if m.Content.Parts == nil {
		return m.Content.Text
	}
	if m.Type == MessageTypeQuiz {
		var b strings.Builder
		b.WriteString("Generated a quiz with questions: ")
		for i, p := range m.Content.Parts {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(p.Question)
		}
		return b.String()
	}
	if len(m.Content.Parts) > 0 {
		return m.Content.Parts[0].Message
	}
	return ""
}

// Chat is a persisted conversation: a title plus the full ordered history.
type Chat struct {
	ID        string
	UserID    string
	Title     string
	History   []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the chat
func (c *Chat) Validate() error {
	if c.UserID == "" {
		return NewError(CodeValidation, "user ID is required", nil)
	}
	if c.Title == "" {
		return NewError(CodeValidation, "title is required", nil)
	}
	return nil
}

// ChatRepository defines the interface for chat persistence.
type ChatRepository interface {
	CreateChat(ctx context.Context, chat *Chat) error
	UpdateChat(ctx context.Context, chat *Chat) error
	GetChatByID(ctx context.Context, chatID, userID string) (*Chat, error)
	GetChatsByUser(ctx context.Context, userID string) ([]*Chat, error)
	DeleteChat(ctx context.Context, chatID, userID string) error
}

// TransactionManager runs a function inside a storage transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
