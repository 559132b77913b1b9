package handler

import (
	"quizard/internal/dto"
	"quizard/internal/middleware"
	"quizard/internal/service"
	"quizard/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type QuizHandler struct {
	quizService      service.QuizService
	analyticsService service.AnalyticsService
	validator        *validation.Validator
}

func NewQuizHandler(quizService service.QuizService, analyticsService service.AnalyticsService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		quizService:      quizService,
		analyticsService: analyticsService,
		validator:        validator,
	}
}

// SaveQuiz persists a generated quiz as a draft.
// @Summary Save a quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.SaveQuizRequest true "quiz to save"
// @Success 200 {object} dto.SaveQuizResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid quiz"
// @Router /quizzes [post]
func (h *QuizHandler) SaveQuiz(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	var req dto.SaveQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	resp, err := h.quizService.SaveQuiz(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetMyQuizzes lists the authenticated creator's quiz sets.
// @Summary List my quizzes
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.QuizSetSummary
// @Router /quizzes [get]
func (h *QuizHandler) GetMyQuizzes(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	summaries, err := h.quizService.GetMyQuizzes(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(summaries)
}

// GetQuiz returns one quiz set. Published sets are public; drafts are
// visible to their creator only. Authentication is optional.
// @Summary Get a quiz
// @Tags quizzes
// @Produce json
// @Param id path string true "quiz id"
// @Success 200 {object} dto.QuizSetResponse
// @Failure 404 {object} middleware.ErrorResponse "Quiz not found"
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.quizService.GetQuiz(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(quiz)
}

// UpdateQuiz replaces the title and questions of one of the creator's quiz
// sets.
// @Summary Edit a quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "quiz id"
// @Param body body dto.UpdateQuizRequest true "new title and questions"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid quiz"
// @Failure 404 {object} middleware.ErrorResponse "Quiz not found"
// @Router /quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if err := h.quizService.UpdateQuiz(c.Context(), c.Params("id"), userID, &req); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "quiz updated"})
}

// DeleteQuiz removes one of the creator's quiz sets.
// @Summary Delete a quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "quiz id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Quiz not found"
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	if err := h.quizService.DeleteQuiz(c.Context(), c.Params("id"), userID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "quiz deleted"})
}

// UpdateSettings replaces a quiz set's settings document and status.
// @Summary Update quiz settings
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "quiz id"
// @Param body body dto.UpdateQuizSettingsRequest true "settings and status"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Quiz not found"
// @Router /quizzes/{id}/settings [patch]
func (h *QuizHandler) UpdateSettings(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	var req dto.UpdateQuizSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if err := h.quizService.UpdateSettings(c.Context(), c.Params("id"), userID, &req); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "settings updated"})
}

// SubmitAttempt records a participant run against a published quiz.
// Anonymous participants are allowed.
// @Summary Submit a quiz attempt
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "quiz id"
// @Param body body dto.SubmitAttemptRequest true "attempt"
// @Success 200 {object} dto.SubmitAttemptResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid attempt"
// @Failure 404 {object} middleware.ErrorResponse "Quiz not found"
// @Router /quizzes/{id}/attempts [post]
func (h *QuizHandler) SubmitAttempt(c *fiber.Ctx) error {
	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateSubmitAttemptRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.quizService.SubmitAttempt(c.Context(), c.Params("id"), middleware.UserID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetQuizAnalytics returns the attempt breakdown of one quiz set.
// @Summary Quiz analytics
// @Tags analytics
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "quiz id"
// @Success 200 {object} dto.QuizAnalyticsResponse
// @Failure 403 {object} middleware.ErrorResponse "Not the creator"
// @Failure 404 {object} middleware.ErrorResponse "Quiz not found"
// @Router /quizzes/{id}/analytics [get]
func (h *QuizHandler) GetQuizAnalytics(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	resp, err := h.analyticsService.GetQuizAnalytics(c.Context(), c.Params("id"), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetOverview returns the creator's dashboard summary.
// @Summary Analytics overview
// @Tags analytics
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.OverviewAnalyticsResponse
// @Router /analytics/overview [get]
func (h *QuizHandler) GetOverview(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	resp, err := h.analyticsService.GetOverview(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
