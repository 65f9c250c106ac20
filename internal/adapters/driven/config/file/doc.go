// Package file keeps user-facing configuration on disk under the data
// directory (~/.autoanswer by default).
//
// ConfigStore reads and writes config.toml. PromptStore serves the prompt
// templates in prompts/, seeding the directory from the copies embedded
// in the binary.
package file
