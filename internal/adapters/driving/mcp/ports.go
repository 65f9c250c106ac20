package mcp

import (
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls into.
type Ports struct {
	// Answer answers form questions through the LLM.
	Answer driving.AnswerService

	// Assist runs document assistance actions. Optional; the assist tool
	// is only registered when it is set.
	Assist driving.AssistService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Answer == nil {
		return ErrMissingAnswerService
	}
	return nil
}
