// Package reconcile maps free-form answer text onto a question's options.
//
// LLM answers are usually either the option text parroted back or a
// paraphrase of it. Single-choice resolution therefore runs two phases:
// an exact/containment scan in display order, then a token-overlap score
// over significant words. Multi-choice resolution decides each option
// independently. Free-text answers pass through trimmed.
//
// Every function is pure and total over arbitrary strings. A result with
// nothing selected is a normal outcome meaning "not confident enough";
// callers leave the question unanswered rather than guessing.
//
// # Import Rules
//
//   - Can Import: domain package and the standard library
//   - Cannot Import: ports, services, adapters
package reconcile
