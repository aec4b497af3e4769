package handler

import (
	"studion/internal/dto"
	"studion/internal/service"
	"studion/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	documents service.DocumentService
	quizzes   service.QuizService
	validator *validation.Validator
}

// NewDocumentHandler creates a new DocumentHandler instance
func NewDocumentHandler(documents service.DocumentService, quizzes service.QuizService, validator *validation.Validator) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		quizzes:   quizzes,
		validator: validator,
	}
}

// CreateDocument godoc
// @Summary Register an uploaded document
// @Description Stores a pending document. With immediate=true processing starts right away.
// @Tags documents
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param document body dto.CreateDocumentRequest true "Document"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *fiber.Ctx) error {
	var req dto.CreateDocumentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := checked(h.validator.ValidateCreateDocumentRequest(req)); err != nil {
		return err
	}

	resp, err := h.documents.CreateDocument(c.UserContext(), service.UploadInput{
		OwnerID:    userID(c),
		FileName:   req.FileName,
		FilePath:   req.FilePath,
		Immediate:  req.Immediate,
		Generation: generationRequest(req.GenerationOptions),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetDocument godoc
// @Summary Get a document
// @Description Returns the document with its summary and processing state
// @Tags documents
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := checked(h.validator.ValidateID("id", id)); err != nil {
		return err
	}

	resp, err := h.documents.GetDocument(c.UserContext(), id, userID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ProcessDocument godoc
// @Summary Start or retry processing
// @Description Schedules the pipeline for a pending or failed document and returns immediately
// @Tags documents
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Document ID"
// @Param options body dto.ProcessDocumentRequest false "Generation options"
// @Success 202 {object} dto.ProcessingAckResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /documents/{id}/process [post]
func (h *DocumentHandler) ProcessDocument(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := checked(h.validator.ValidateID("id", id)); err != nil {
		return err
	}
	var req dto.ProcessDocumentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := checked(h.validator.ValidateGenerationOptions(req.GenerationOptions)); err != nil {
		return err
	}

	ack, err := h.documents.StartProcessing(c.UserContext(), id, userID(c), generationRequest(req.GenerationOptions))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(ack)
}

// RecordView godoc
// @Summary Record a document view
// @Tags documents
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /documents/{id}/view [post]
func (h *DocumentHandler) RecordView(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := checked(h.validator.ValidateID("id", id)); err != nil {
		return err
	}

	resp, err := h.documents.RecordView(c.UserContext(), id, userID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RecordDownload godoc
// @Summary Record a document download
// @Tags documents
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /documents/{id}/download [post]
func (h *DocumentHandler) RecordDownload(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := checked(h.validator.ValidateID("id", id)); err != nil {
		return err
	}

	resp, err := h.documents.RecordDownload(c.UserContext(), id, userID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuizzes godoc
// @Summary List the quizzes generated from a document
// @Tags documents
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param id path string true "Document ID"
// @Success 200 {object} dto.QuizListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /documents/{id}/quizzes [get]
func (h *DocumentHandler) ListQuizzes(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := checked(h.validator.ValidateID("id", id)); err != nil {
		return err
	}

	resp, err := h.quizzes.ListDocumentQuizzes(c.UserContext(), id, userID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
