// Package driving is the surface the CLI, TUI and MCP server call into.
//
// Each interface here is implemented by a service in internal/core/services
// and reaches infrastructure only through the driven ports.
package driving
