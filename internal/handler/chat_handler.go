package handler

import (
	"quizard/internal/dto"
	"quizard/internal/middleware"
	"quizard/internal/service"
	"quizard/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chatService service.ChatService
	validator   *validation.Validator
}

func NewChatHandler(chatService service.ChatService, validator *validation.Validator) *ChatHandler {
	return &ChatHandler{chatService: chatService, validator: validator}
}

// SaveChat stores a conversation, inserting or replacing by chat_id.
// @Summary Save a chat
// @Description Inserts a new chat or rewrites the history of an existing one.
// @Tags chats
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.SaveChatRequest true "chat to save"
// @Success 200 {object} dto.SaveChatResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid request"
// @Failure 404 {object} middleware.ErrorResponse "Chat not found"
// @Router /chats [post]
func (h *ChatHandler) SaveChat(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	var req dto.SaveChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateSaveChatRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.chatService.SaveChat(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetChats lists the authenticated user's chats.
// @Summary List my chats
// @Tags chats
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.ChatSummary
// @Router /chats [get]
func (h *ChatHandler) GetChats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	summaries, err := h.chatService.GetChats(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(summaries)
}

// GetChat returns one chat with its full history.
// @Summary Get a chat
// @Tags chats
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "chat id"
// @Success 200 {object} dto.ChatResponse
// @Failure 404 {object} middleware.ErrorResponse "Chat not found"
// @Router /chats/{id} [get]
func (h *ChatHandler) GetChat(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	chat, err := h.chatService.GetChat(c.Context(), c.Params("id"), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(chat)
}

// DeleteChat removes one of the user's chats.
// @Summary Delete a chat
// @Tags chats
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "chat id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Chat not found"
// @Router /chats/{id} [delete]
func (h *ChatHandler) DeleteChat(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	if err := h.chatService.DeleteChat(c.Context(), c.Params("id"), userID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "chat deleted"})
}
