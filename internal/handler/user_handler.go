package handler

import (
	"github.com/Swayamo/quizverse/internal/middleware"
	"github.com/Swayamo/quizverse/internal/service"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	authService service.AuthService
}

func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// GetMe returns the authenticated user's profile.
// @Summary Get current user
// @Description Returns the profile of the authenticated user.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid token"
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	resp, err := h.authService.GetUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
