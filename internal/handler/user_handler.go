package handler

import (
	"quizard/internal/dto"
	"quizard/internal/middleware"
	"quizard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMyProfile retrieves the profile of the currently authenticated user.
// @Summary Get My Profile
// @Description Retrieves the logged-in user's profile, including the coin balance.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	profile, err := h.userService.GetMyProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// UpdateMyProfile edits the authenticated user's display name.
// @Summary Update My Profile
// @Description Changes the logged-in user's display name.
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileRequest true "new display name"
// @Success 200 {object} dto.UserProfileResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid name"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /users/me [patch]
func (h *UserHandler) UpdateMyProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	profile, err := h.userService.UpdateMyProfile(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// GetMyBalance returns the remaining coin balance. Lighter than the full
// profile; meant for polling after a generation call.
// @Summary Get My Coin Balance
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.CoinBalanceResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /users/me/balance [get]
func (h *UserHandler) GetMyBalance(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	balance, err := h.userService.GetCoinBalance(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.CoinBalanceResponse{CoinBalance: balance})
}
