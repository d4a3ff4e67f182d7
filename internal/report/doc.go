// Package report prints what boiler found and did: capability listings,
// change summaries, diffs and highlighted context documents.
package report
