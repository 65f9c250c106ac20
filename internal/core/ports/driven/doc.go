// Package driven lists what the core needs from the outside world.
//
// Services receive these interfaces; adapters under internal/adapters/driven
// implement them. Only ConfigStore, PromptStore and a FormSource are needed
// to start. The rest may be nil and the matching features switch off:
//
//   - LLMService: without it nothing can be answered or assisted
//   - RunStore: without it runs are not kept for "history"
//   - DocumentSource: without it --doc and --file are rejected
//   - TokenProvider: without it the Google sources report they are unavailable
//
// This package imports domain and nothing else from internal/.
package driven
