package handler

import (
	"strings"

	"quizard/internal/domain"
	"quizard/internal/dto"
	"quizard/internal/logger"
	"quizard/internal/middleware"
	"quizard/internal/service"
	"quizard/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GenerationHandler struct {
	generationService service.GenerationService
	chatService       service.ChatService
	validator         *validation.Validator
}

func NewGenerationHandler(generationService service.GenerationService, chatService service.ChatService, validator *validation.Validator) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		chatService:       chatService,
		validator:         validator,
	}
}

// Generate runs one generation call for the authenticated user.
// @Summary Generate a quiz or a conversational reply
// @Description Charges the fixed coin cost and returns either a quiz or an assistant message, decided by the model from the prompt. With chat_id set, the stored conversation history is fed back to the model.
// @Tags generation
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "generation request"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid request"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 403 {object} middleware.ErrorResponse "Insufficient coins"
// @Failure 502 {object} middleware.ErrorResponse "Model returned an invalid response"
// @Failure 503 {object} middleware.ErrorResponse "Model unreachable"
// @Router /generate [post]
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateGenerateRequest(&req); len(errs) > 0 {
		return errs
	}

	genReq := &domain.GenerationRequest{
		Prompt:        req.Prompt,
		Title:         strings.TrimSpace(req.Title),
		QuestionCount: req.NumQuestions,
		Difficulty:    strings.ToLower(req.Difficulty),
	}

	// A chat id switches the call to stateful mode: the stored history is
	// embedded in the instruction and the chat title backs a missing one.
	if req.ChatID != "" {
		chat, err := h.chatService.GetChat(c.Context(), req.ChatID, userID)
		if err != nil {
			return err
		}
		genReq.History = chat.History
		if genReq.Title == "" {
			genReq.Title = chat.Title
		}
	}

	result, err := h.generationService.Generate(c.Context(), userID, genReq)
	if err != nil {
		// The one partial-success case: content was generated but the
		// charge did not persist. The response carries the content plus a
		// warning instead of an error status.
		if result != nil && domain.IsCode(err, domain.CodeLedgerUpdateFailed) {
			logger.Get().Warn("Returning generation result despite failed charge",
				zap.String("userID", userID))
			return c.Status(fiber.StatusOK).JSON(dto.FromGenerationResult(result))
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dto.FromGenerationResult(result))
}
