package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{name: "prefix only", want: "studion"},
		{name: "parts", parts: []string{"document", "summary", "01HY"}, want: "studion:document:summary:01HY"},
		{name: "blank parts skipped", parts: []string{"attempt", " ", "", "01HX"}, want: "studion:attempt:01HX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.parts...))
		})
	}
}

func TestQuizKey(t *testing.T) {
	assert.Equal(t, "studion:attempt:quiz:v1:01HX", QuizKey("01HX"))
}
