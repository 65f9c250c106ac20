// Package domain holds autoanswer's value types and the errors the rest
// of the program matches on.
//
// A Form is an ordered list of Questions. Answering a question produces a
// MatchResult from the reconciler, which is recorded as an Outcome inside
// a Run. AssistAction and AssistResult describe the writing assistant.
// Settings types carry what the config store persists.
//
// Only the standard library may be imported here.
package domain
