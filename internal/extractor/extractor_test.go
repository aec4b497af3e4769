package extractor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"studion/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	out := Analyze("\uFEFFone two\r\nthree\fpage two words\n")
	assert.Equal(t, "one two\nthree\fpage two words", out.Text)
	assert.Equal(t, 2, out.PageCount)
	assert.Equal(t, 6, out.WordCount)

	empty := Analyze("   ")
	assert.Equal(t, 0, empty.PageCount)
	assert.Equal(t, 0, empty.WordCount)
}

func TestPlainTextExtractor_Extract(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Cells\n\nCells are small."), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.txt"), []byte{0xff, 0xfe, 0x00}, 0o600))

	e := NewPlainTextExtractor(dir)
	ctx := context.Background()

	out, err := e.Extract(ctx, "notes.md")
	require.NoError(t, err)
	assert.Equal(t, 5, out.WordCount)
	assert.Equal(t, 1, out.PageCount)

	_, err = e.Extract(ctx, "bad.txt")
	assert.True(t, domain.IsCode(err, domain.CodeExtractionFailure))

	_, err = e.Extract(ctx, "missing.txt")
	assert.True(t, domain.IsCode(err, domain.CodeExtractionFailure))

	_, err = e.Extract(ctx, "slides.pptx")
	assert.True(t, domain.IsCode(err, domain.CodeExtractionFailure))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = e.Extract(cancelled, "notes.md")
	assert.True(t, domain.IsCode(err, domain.CodeExtractionFailure))
}
