// Package localfile reads the plain text of documents on disk for assist actions.
//
// Markdown, HTML and Word (.docx) files are reduced to plain text; anything
// else is read as UTF-8 text.
package localfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// DefaultMaxSize caps how much of a file is read.
const DefaultMaxSize = 10 << 20

// Format is a supported document format.
type Format string

// Supported formats.
const (
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatDOCX     Format = "docx"
)

// Source reads local documents.
type Source struct {
	maxSize int64
}

// New creates a local file source.
func New() *Source {
	return &Source{maxSize: DefaultMaxSize}
}

// SetMaxSize overrides the size limit. Values <= 0 restore the default.
func (s *Source) SetMaxSize(n int64) {
	if n <= 0 {
		n = DefaultMaxSize
	}
	s.maxSize = n
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	case ".docx":
		return FormatDOCX
	default:
		return FormatPlain
	}
}

// Text returns the document title and body text.
func (s *Source) Text(ctx context.Context, path string) (string, string, error) {
	if strings.TrimSpace(path) == "" {
		return "", "", fmt.Errorf("%w: file path is required", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return "", "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", "", fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	if info.Size() > s.maxSize {
		return "", "", fmt.Errorf("%w: %s is larger than %d bytes", domain.ErrInvalidInput, path, s.maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}

	format := DetectFormat(path)
	logger.Debug("Reading %s as %s", path, format)

	var title, body string
	switch format {
	case FormatMarkdown:
		content := string(data)
		title, body = markdownTitle(content), stripMarkdown(content)
	case FormatHTML:
		content := string(data)
		title, body = htmlTitle(content), stripHTML(content)
	case FormatDOCX:
		title, body, err = readDOCX(data)
		if err != nil {
			return "", "", fmt.Errorf("read %s: %w", path, err)
		}
	default:
		if !utf8.Valid(data) {
			return "", "", fmt.Errorf("%w: %s is not a text file", domain.ErrInvalidInput, path)
		}
		body = strings.TrimSpace(string(data))
	}

	if title == "" {
		title = titleFromPath(path)
	}
	return title, body, nil
}

// titleFromPath turns "exam_notes-week1.md" into "exam notes week1".
func titleFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ReplaceAll(name, "-", " ")
}
