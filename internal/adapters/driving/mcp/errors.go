// Package mcp provides an MCP (Model Context Protocol) server adapter for autoanswer.
// It lets AI assistants reconcile answers, answer form questions and run assist actions.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")
