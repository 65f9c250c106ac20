// Package sqlite stores answering history in ~/.autoanswer/data/history.db
// using modernc.org/sqlite, so the binary builds without cgo.
//
// A run is one row in runs; each question it touched is a row in outcomes
// holding the reconciler's MatchResult as JSON. Schema changes ship as
// numbered up/down SQL pairs in migrations/ and are applied on open.
//
// The database runs in WAL mode with a busy timeout, so a watch session
// can record runs while "history" reads them.
package sqlite
