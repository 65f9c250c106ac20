package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

const uriScheme = "autoanswer://"

type fieldTypeInfo struct {
	Type        domain.FieldType    `json:"type"`
	Kind        domain.QuestionKind `json:"kind"`
	Description string              `json:"description"`
}

type actionInfo struct {
	Action domain.AssistAction `json:"action"`
	Label  string              `json:"label"`
	Title  string              `json:"title"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "field-types",
		Name:        "field-types",
		Description: "Supported form field types and how their answers are reconciled",
		MIMEType:    "application/json",
	}, s.handleFieldTypesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "field-types/{type}",
		Name:        "field-type",
		Description: "A single form field type",
		MIMEType:    "application/json",
	}, s.handleFieldTypeResource)

	if s.ports.Assist != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "assist-actions",
			Name:        "assist-actions",
			Description: "Document assistance actions accepted by the assist tool",
			MIMEType:    "application/json",
		}, s.handleAssistActionsResource)
	}
}

// handleFieldTypesResource lists every supported field type.
func (s *Server) handleFieldTypesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	types := domain.AllFieldTypes()
	infos := make([]fieldTypeInfo, len(types))
	for i, ft := range types {
		infos[i] = describeFieldType(ft)
	}
	return jsonResource(req.Params.URI, infos)
}

// handleFieldTypeResource describes the field type named in the URI.
func (s *Server) handleFieldTypeResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	ft := domain.FieldType(extractFieldType(req.Params.URI))
	if !ft.IsValid() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, describeFieldType(ft))
}

// handleAssistActionsResource lists the assist actions.
func (s *Server) handleAssistActionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	actions := domain.AllAssistActions()
	infos := make([]actionInfo, len(actions))
	for i, a := range actions {
		infos[i] = actionInfo{Action: a, Label: a.Label(), Title: a.Title()}
	}
	return jsonResource(req.Params.URI, infos)
}

func describeFieldType(ft domain.FieldType) fieldTypeInfo {
	return fieldTypeInfo{Type: ft, Kind: ft.Kind(), Description: ft.Description()}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractFieldType extracts the type from a URI like autoanswer://field-types/{type}.
func extractFieldType(uri string) string {
	const prefix = uriScheme + "field-types/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
