// Package file loads forms from local YAML or JSON files.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.FormSource = (*Source)(nil)

// SourceName identifies this form source.
const SourceName = "file"

// Source loads forms from the filesystem.
type Source struct{}

// New creates a file form source.
func New() *Source {
	return &Source{}
}

// Name returns the source identifier.
func (s *Source) Name() string {
	return SourceName
}

// Load reads, parses, and validates the form file at path.
func (s *Source) Load(_ context.Context, path string) (*domain.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes form data. The format is chosen by the extension of name:
// .json is JSON, anything else is YAML.
func Parse(data []byte, name string) (*domain.Form, error) {
	doc, err := parseDocument(data, name)
	if err != nil {
		return nil, err
	}

	questions, err := normalizeDocument(doc)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Title)
	if title == "" {
		base := filepath.Base(name)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return &domain.Form{
		ID:        name,
		Title:     title,
		Source:    SourceName,
		Questions: questions,
	}, nil
}

func parseDocument(data []byte, name string) (document, error) {
	if strings.ToLower(filepath.Ext(name)) == ".json" {
		return parseJSON(data)
	}
	return parseYAML(data)
}

func parseJSON(data []byte) (document, error) {
	var doc document
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return document{}, fmt.Errorf("parse json: %w", err)
	}
	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			return document{}, errors.New("parse json: multiple documents are not supported")
		}
		return document{}, fmt.Errorf("parse json: %w", err)
	}
	return doc, nil
}

func parseYAML(data []byte) (document, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return document{}, errors.New("parse yaml: empty document")
		}
		return document{}, fmt.Errorf("parse yaml: %w", err)
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			return document{}, errors.New("parse yaml: multiple documents are not supported")
		}
		return document{}, fmt.Errorf("parse yaml: %w", err)
	}
	return doc, nil
}
