package handler

import (
	"studion/internal/domain"
	"studion/internal/dto"
	"studion/internal/service"
	"studion/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AttemptHandler handles quiz attempt HTTP requests
type AttemptHandler struct {
	service   service.AttemptService
	validator *validation.Validator
}

// NewAttemptHandler creates a new AttemptHandler instance
func NewAttemptHandler(service service.AttemptService, validator *validation.Validator) *AttemptHandler {
	return &AttemptHandler{
		service:   service,
		validator: validator,
	}
}

// StartAttempt godoc
// @Summary Start or resume an attempt
// @Description Returns the caller's open attempt on the quiz, or starts a new one
// @Tags attempts
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param attempt body dto.StartAttemptRequest true "Quiz to attempt"
// @Success 201 {object} dto.AttemptResponse "New attempt"
// @Success 200 {object} dto.AttemptResponse "Resumed attempt"
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts [post]
func (h *AttemptHandler) StartAttempt(c *fiber.Ctx) error {
	var req dto.StartAttemptRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := checked(h.validator.ValidateStartAttemptRequest(req)); err != nil {
		return err
	}

	userAgent := req.Device.UserAgent
	if userAgent == "" {
		userAgent = c.Get(fiber.HeaderUserAgent)
	}
	resp, err := h.service.StartAttempt(c.UserContext(), req.QuizID, userID(c), domain.DeviceMetadata{
		UserAgent: userAgent,
		IPAddress: c.IP(),
		Platform:  req.Device.Platform,
	})
	if err != nil {
		return err
	}

	status := fiber.StatusCreated
	if resp.Resumed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(resp)
}

// SubmitAnswer godoc
// @Summary Answer a question
// @Description Records an answer and returns feedback with running progress
// @Tags attempts
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Attempt ID"
// @Param answer body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.AnswerFeedbackResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /attempts/{id}/answers [post]
func (h *AttemptHandler) SubmitAnswer(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := checked(h.validator.ValidateID("id", id)); err != nil {
		return err
	}
	var req dto.SubmitAnswerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := checked(h.validator.ValidateSubmitAnswerRequest(req)); err != nil {
		return err
	}

	resp, err := h.service.SubmitAnswer(c.UserContext(), service.SubmitAnswerInput{
		AttemptID:     id,
		UserID:        userID(c),
		QuestionIndex: req.QuestionIndex,
		Answer:        service.AnswerInput{Text: req.UserAnswer.Text, Index: req.UserAnswer.Index},
		TimeSpentMs:   req.TimeSpentMs,
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CompleteAttempt godoc
// @Summary Complete an attempt
// @Description Scores the attempt and updates the quiz analytics
// @Tags attempts
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptSummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /attempts/{id}/complete [post]
func (h *AttemptHandler) CompleteAttempt(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := checked(h.validator.ValidateID("id", id)); err != nil {
		return err
	}

	resp, err := h.service.CompleteAttempt(c.UserContext(), id, userID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetResults godoc
// @Summary Get attempt results
// @Description Per-question review and skill breakdown of a completed attempt
// @Tags attempts
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResultsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /attempts/{id}/results [get]
func (h *AttemptHandler) GetResults(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := checked(h.validator.ValidateID("id", id)); err != nil {
		return err
	}

	resp, err := h.service.GetResults(c.UserContext(), id, userID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
