package config

import (
	"testing"
	"time"

	"studion/internal/domain"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 10, cfg.Attempt.PointsPerCorrect)
	assert.Equal(t, 70, cfg.Attempt.DefaultPassingScore)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	cfg.LLM.Provider = "claude"
	assert.Error(t, cfg.Validate())

	cfg = fromViper(v)
	cfg.LLM.Provider = "gemini"
	assert.Error(t, cfg.Validate(), "gemini needs an api key")
	cfg.LLM.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	cfg = fromViper(v)
	cfg.Generation.QuestionType = "essay"
	assert.Error(t, cfg.Validate())
}

func TestForRequest(t *testing.T) {
	gen := GenerationConfig{
		QuestionType:     "multiple_choice",
		QuestionCount:    10,
		Difficulty:       "medium",
		Language:         "en",
		TokenBudget:      6000,
		SummaryMaxTokens: 1000,
		QuizMaxTokens:    2000,
	}
	llm := LLMConfig{Temperature: 0.2}

	out := gen.ForRequest(GenerationRequest{QuestionType: "true_false", Language: "FR"}, llm, 80)
	assert.Equal(t, domain.QuizTrueFalse, out.QuestionType)
	assert.Equal(t, 10, out.QuestionCount)
	assert.Equal(t, "medium", out.Difficulty)
	assert.Equal(t, "fr", out.Language)
	assert.Equal(t, 6000, out.TokenBudget)
	assert.Equal(t, 0.2, out.Temperature)
	assert.Equal(t, 80, out.PassingScore)

	// defaults are untouched by a request override
	assert.Equal(t, "multiple_choice", gen.QuestionType)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{DB: DBConfig{Host: "db", Port: 1521, User: "u", Password: "p", DBName: "FREEPDB1"}}
	assert.Equal(t, "oracle://u:p@db:1521/FREEPDB1", cfg.GetDSN())
}
