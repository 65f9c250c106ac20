// Package tui is the interactive writing assistant: paste or load text,
// pick an assist action, copy the reply.
package tui

import (
	"errors"

	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driving"
)

// Port validation errors.
var (
	ErrInvalidPorts         = errors.New("tui: invalid ports configuration")
	ErrMissingAssistService = errors.New("tui: assist service is required")
)

// Ports holds the services the TUI drives.
type Ports struct {
	Assist driving.AssistService
}

// Validate reports a nil Ports or a missing assist service.
func (p *Ports) Validate() error {
	switch {
	case p == nil:
		return ErrInvalidPorts
	case p.Assist == nil:
		return ErrMissingAssistService
	}
	return nil
}
