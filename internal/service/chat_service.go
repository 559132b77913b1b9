package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quizard/internal/cache"
	"quizard/internal/domain"
	"quizard/internal/dto"
	"quizard/internal/logger"

	"go.uber.org/zap"
)

const chatListCacheTTL = 10 * time.Minute

// ChatService persists conversations for the generation flow. It is the
// caller-side of the contract: generation itself never writes chats.
type ChatService interface {
	SaveChat(ctx context.Context, userID string, req *dto.SaveChatRequest) (*dto.SaveChatResponse, error)
	GetChat(ctx context.Context, chatID, userID string) (*dto.ChatResponse, error)
	GetChats(ctx context.Context, userID string) ([]dto.ChatSummary, error)
	DeleteChat(ctx context.Context, chatID, userID string) error
}

type chatServiceImpl struct {
	chatRepo  domain.ChatRepository
	txManager domain.TransactionManager
	cache     domain.Cache
}

// NewChatService creates a new instance of ChatService.
func NewChatService(chatRepo domain.ChatRepository, txManager domain.TransactionManager, cacheClient domain.Cache) ChatService {
	return &chatServiceImpl{
		chatRepo:  chatRepo,
		txManager: txManager,
		cache:     cacheClient,
	}
}

func chatListCacheKey(userID string) string {
	return cache.GenerateCacheKey("chat", "list", userID)
}

// SaveChat inserts a new chat or replaces the history of an existing one.
// The whole history is rewritten in one transaction so a reader never sees
// a half-updated conversation.
func (s *chatServiceImpl) SaveChat(ctx context.Context, userID string, req *dto.SaveChatRequest) (*dto.SaveChatResponse, error) {
	chat := &domain.Chat{
		ID:      req.ChatID,
		UserID:  userID,
		Title:   req.Title,
		History: req.Messages,
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if chat.ID == "" {
			return s.chatRepo.CreateChat(txCtx, chat)
		}
		return s.chatRepo.UpdateChat(txCtx, chat)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateChatList(ctx, userID)
	return &dto.SaveChatResponse{ChatID: chat.ID}, nil
}

func (s *chatServiceImpl) GetChat(ctx context.Context, chatID, userID string) (*dto.ChatResponse, error) {
	chat, err := s.chatRepo.GetChatByID(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ChatResponse{
		ID:      chat.ID,
		Title:   chat.Title,
		History: chat.History,
	}, nil
}

// GetChats lists the user's chats, served from cache when possible.
func (s *chatServiceImpl) GetChats(ctx context.Context, userID string) ([]dto.ChatSummary, error) {
	appLogger := logger.Get()
	key := chatListCacheKey(userID)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var summaries []dto.ChatSummary
		if err := json.Unmarshal([]byte(cached), &summaries); err == nil {
			return summaries, nil
		}
		appLogger.Warn("Failed to unmarshal cached chat list, falling back to DB", zap.String("key", key))
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		appLogger.Warn("Cache get failed for chat list", zap.String("key", key), zap.Error(err))
	}

	chats, err := s.chatRepo.GetChatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summaries = append(summaries, dto.ChatSummary{
			ID:        chat.ID,
			Title:     chat.Title,
			CreatedAt: chat.CreatedAt,
		})
	}

	if payload, err := json.Marshal(summaries); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), chatListCacheTTL); err != nil {
			appLogger.Warn("Cache set failed for chat list", zap.String("key", key), zap.Error(err))
		}
	}
	return summaries, nil
}

func (s *chatServiceImpl) DeleteChat(ctx context.Context, chatID, userID string) error {
	if err := s.chatRepo.DeleteChat(ctx, chatID, userID); err != nil {
		return err
	}
	s.invalidateChatList(ctx, userID)
	return nil
}

func (s *chatServiceImpl) invalidateChatList(ctx context.Context, userID string) {
	key := chatListCacheKey(userID)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to invalidate chat list cache", zap.String("key", key), zap.Error(err))
	}
}
