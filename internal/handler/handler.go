package handler

import (
	"studion/internal/config"
	"studion/internal/domain"
	"studion/internal/dto"
	"studion/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes a JSON body. An empty body leaves out untouched.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return domain.NewBadInputError("Invalid request body").WithContext("cause", err.Error())
	}
	return nil
}

// checked turns an empty error list into a nil error so it never reaches
// the error handler as a typed nil.
func checked(errs domain.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func generationRequest(opts dto.GenerationOptions) config.GenerationRequest {
	return config.GenerationRequest{
		QuestionType:  opts.QuestionType,
		QuestionCount: opts.QuestionCount,
		Difficulty:    opts.Difficulty,
		Language:      opts.Language,
	}
}

func userID(c *fiber.Ctx) string {
	return middleware.UserIDFrom(c)
}
