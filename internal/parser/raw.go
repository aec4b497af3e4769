package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// scalar accepts any JSON scalar and keeps its string form. Models are loose
// about whether answers and counts are quoted.
type scalar struct {
	text    string
	present bool
	isBool  bool
	boolVal bool
}

func (s *scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*s = scalar{}
	switch {
	case bytes.Equal(b, []byte("null")):
		return nil
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		s.present = true
		s.isBool = true
		s.boolVal = b[0] == 't'
		s.text = string(b)
		return nil
	case len(b) > 0 && b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s.present = true
		s.text = str
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a scalar, got %s", truncateForLog(string(b)))
	}
	s.present = true
	s.text = n.String()
	return nil
}

func (s scalar) trimmed() string {
	return strings.TrimSpace(s.text)
}

func (s scalar) intOr(def int) int {
	if !s.present {
		return def
	}
	if n, err := strconv.Atoi(s.trimmed()); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s.trimmed(), 64); err == nil {
		return int(f)
	}
	return def
}

type rawCollection struct {
	Quizzes *[]json.RawMessage `json:"quizzes"`
}

type rawQuiz struct {
	Title      scalar            `json:"title"`
	Type       scalar            `json:"type"`
	Difficulty scalar            `json:"difficulty"`
	Questions  []json.RawMessage `json:"questions"`
}

type rawQuestion struct {
	Question      scalar   `json:"question"`
	Text          scalar   `json:"text"`
	Options       []scalar `json:"options"`
	CorrectAnswer scalar   `json:"correctAnswer"`
	Explanation   scalar   `json:"explanation"`
	Points        scalar   `json:"points"`
	SkillCategory scalar   `json:"skillCategory"`
	TopicArea     scalar   `json:"topicArea"`
	Strength      scalar   `json:"strength"`
	Weakness      scalar   `json:"weakness"`
}

// questionText prefers "question" and accepts "text" as an alias.
func (q rawQuestion) questionText() string {
	if t := q.Question.trimmed(); t != "" {
		return t
	}
	return q.Text.trimmed()
}

type rawSummary struct {
	Summary    scalar   `json:"summary"`
	KeyPoints  []scalar `json:"keyPoints"`
	Topics     []scalar `json:"topics"`
	Language   scalar   `json:"language"`
	Complexity scalar   `json:"complexity"`
}

func scalarsToStrings(in []scalar) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := s.trimmed(); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func truncateForLog(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
