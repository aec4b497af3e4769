package handler

import (
	"studion/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything mounted under /api.
type Handlers struct {
	Documents *DocumentHandler
	Quizzes   *QuizHandler
	Attempts  *AttemptHandler
	Health    *HealthHandler
}

// RegisterRoutes mounts the API. Every route except health requires X-User-ID.
func RegisterRoutes(router fiber.Router, h Handlers) {
	if h.Health != nil {
		router.Get("/health", h.Health.Health)
	}

	api := router.Group("", middleware.RequireUser())

	documents := api.Group("/documents")
	documents.Post("/", h.Documents.CreateDocument)
	documents.Get("/:id", h.Documents.GetDocument)
	documents.Post("/:id/process", h.Documents.ProcessDocument)
	documents.Post("/:id/view", h.Documents.RecordView)
	documents.Post("/:id/download", h.Documents.RecordDownload)
	documents.Get("/:id/quizzes", h.Documents.ListQuizzes)

	quizzes := api.Group("/quizzes")
	quizzes.Get("/:id", h.Quizzes.GetQuiz)
	quizzes.Delete("/:id", h.Quizzes.DeleteQuiz)

	attempts := api.Group("/attempts")
	attempts.Post("/", h.Attempts.StartAttempt)
	attempts.Post("/:id/answers", h.Attempts.SubmitAnswer)
	attempts.Post("/:id/complete", h.Attempts.CompleteAttempt)
	attempts.Get("/:id/results", h.Attempts.GetResults)
}
