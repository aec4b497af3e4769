package util

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	a, b := NewULID(), NewULID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.True(t, IsULID(a))
	assert.False(t, IsULID("not-a-ulid"))
}

func TestSQLHelpers(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)
	assert.True(t, StringToNullString("x").Valid)

	assert.False(t, TimePtrToNullTime(nil).Valid)
	now := time.Now()
	nt := TimePtrToNullTime(&now)
	assert.True(t, nt.Valid)
	assert.Equal(t, now, *NullTimeToPtr(nt))
	assert.Nil(t, NullTimeToPtr(TimeToNullTime(time.Time{})))

	assert.Equal(t, 1, BoolToInt(true))
	assert.Equal(t, 0, BoolToInt(false))
}

func TestTruncateBytes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "abc", 10, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii cut", "abcdef", 4, "abcd"},
		{"keeps rune boundary", "مقدمة", 3, "م"},
		{"multibyte exact", "مقدمة", 4, "مق"},
		{"zero", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateBytes(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), tt.n)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
