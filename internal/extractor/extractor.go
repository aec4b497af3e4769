// Package extractor reads stored documents as plain text.
package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"studion/internal/domain"
)

// MaxFileBytes bounds how much of a file is read into memory.
const MaxFileBytes = 20 << 20

var supportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".text":     true,
}

// PlainTextExtractor extracts UTF-8 text and markdown files. Pages are
// separated by form feeds.
type PlainTextExtractor struct {
	root string
}

// NewPlainTextExtractor resolves relative file paths against root.
func NewPlainTextExtractor(root string) *PlainTextExtractor {
	return &PlainTextExtractor{root: root}
}

// Extract implements domain.TextExtractor.
func (e *PlainTextExtractor) Extract(ctx context.Context, filePath string) (*domain.ExtractedText, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewExtractionError(err)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if !supportedExtensions[ext] {
		return nil, domain.NewExtractionError(fmt.Errorf("unsupported file type %q", ext))
	}

	path := filePath
	if !filepath.IsAbs(path) && e.root != "" {
		path = filepath.Join(e.root, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.NewExtractionError(err)
	}
	if info.Size() > MaxFileBytes {
		return nil, domain.NewExtractionError(fmt.Errorf("file is %d bytes, limit is %d", info.Size(), MaxFileBytes))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewExtractionError(err)
	}
	if !utf8.Valid(data) {
		return nil, domain.NewExtractionError(fmt.Errorf("file is not valid UTF-8 text"))
	}

	return Analyze(string(data)), nil
}

// Analyze normalizes line endings and counts words and pages.
func Analyze(text string) *domain.ExtractedText {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)

	pages := 0
	if text != "" {
		pages = strings.Count(text, "\f") + 1
	}
	return &domain.ExtractedText{
		Text:      text,
		PageCount: pages,
		WordCount: len(strings.Fields(text)),
	}
}

var _ domain.TextExtractor = (*PlainTextExtractor)(nil)
