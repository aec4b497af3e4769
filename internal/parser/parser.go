// Package parser turns raw completion text into validated quiz collections
// and summaries. It tolerates the usual model output noise: code fences,
// reasoning blocks, prose around the JSON and small syntax mistakes.
package parser

import (
	"encoding/json"
	"strings"

	"studion/internal/domain"

	"go.uber.org/zap"
)

// Parser parses completion responses. It is stateless apart from its logger
// and safe for concurrent use.
type Parser struct {
	logger *zap.Logger
}

// New creates a Parser. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// ParseQuizCollection extracts, repairs if needed and validates a quiz
// generation response against cfg. It fails with PARSE_FAILURE when no JSON
// object can be recovered and VALIDATION_FAILURE when nothing survives
// validation.
func (p *Parser) ParseQuizCollection(raw string, cfg domain.GenerationConfig) (*domain.GeneratedCollection, error) {
	var collection rawCollection
	if err := p.decode(raw, &collection); err != nil {
		return nil, err
	}

	v := newValidator(cfg)
	out, err := v.collection(collection)
	for _, d := range v.dropped {
		p.logger.Warn("Dropped generated content", zap.String("reason", d.String()))
	}
	if err != nil {
		return nil, err
	}

	p.logger.Info("Parsed quiz collection",
		zap.Int("quizzes", len(out.Quizzes)),
		zap.Int("questions", out.QuestionCount()),
		zap.Int("dropped_questions", out.Dropped))
	return out, nil
}

// ParseSummary parses a summary response. When the response holds no usable
// JSON the whole cleaned text becomes the summary.
func (p *Parser) ParseSummary(raw string) (*domain.SummaryResult, error) {
	var rs rawSummary
	if err := p.decode(raw, &rs); err == nil && rs.Summary.trimmed() != "" {
		return &domain.SummaryResult{
			Summary:    rs.Summary.trimmed(),
			KeyPoints:  scalarsToStrings(rs.KeyPoints),
			Topics:     scalarsToStrings(rs.Topics),
			Language:   strings.ToLower(rs.Language.trimmed()),
			Complexity: domain.ParseComplexity(strings.ToLower(rs.Complexity.trimmed())),
		}, nil
	}

	text := cleanResponse(raw)
	if text == "" {
		return nil, domain.NewParseError("Summary response is empty", nil)
	}
	p.logger.Warn("Summary response was not JSON, using raw text", zap.Int("length", len(text)))
	return &domain.SummaryResult{
		Summary:    text,
		KeyPoints:  []string{},
		Topics:     []string{},
		Complexity: domain.ComplexityIntermediate,
	}, nil
}

// decode extracts the first JSON object of raw into dst. A failed strict
// parse gets exactly one repair pass before giving up.
func (p *Parser) decode(raw string, dst interface{}) error {
	span, err := extractObject(raw)
	if err != nil {
		return domain.NewParseError("Failed to locate JSON in AI response", err).
			WithContext("response", truncateForLog(raw))
	}

	strictErr := json.Unmarshal([]byte(span), dst)
	if strictErr == nil {
		return nil
	}

	repaired := repairJSON(span)
	if err := json.Unmarshal([]byte(repaired), dst); err != nil {
		p.logger.Warn("JSON repair failed",
			zap.NamedError("strict_error", strictErr),
			zap.Error(err),
			zap.String("span", truncateForLog(span)))
		return domain.NewParseError("Failed to parse AI response as JSON", err)
	}
	p.logger.Debug("Recovered AI response with JSON repair", zap.NamedError("strict_error", strictErr))
	return nil
}
