package handler

import (
	"studion/internal/service"
	"studion/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns an active quiz owned by the caller, answers included
// @Tags quizzes
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := checked(h.validator.ValidateID("id", id)); err != nil {
		return err
	}

	resp, err := h.service.GetQuiz(c.UserContext(), id, userID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Soft-deletes the quiz. Existing attempts keep their results.
// @Tags quizzes
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Quiz ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := checked(h.validator.ValidateID("id", id)); err != nil {
		return err
	}

	if err := h.service.DeleteQuiz(c.UserContext(), id, userID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
