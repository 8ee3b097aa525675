// Package report turns raw Bluesky feed entries into flat post summaries
// and serializes them as JSON or CSV.
//
// Summarize is a pure projection: it never fails, every field degrades to
// a defined default when absent from the source record. The JSON and CSV
// schemas deliberately differ; full post text and relative timestamps only
// appear in the JSON/HTML paths.
package report
