package report

import (
	"time"

	"bskyreport/pkg/bluesky"
)

// Report holds the identity metadata and the ordered post summaries for
// one invocation. It is never mutated after construction.
type Report struct {
	DID         string    `json:"did"`
	Handle      string    `json:"handle"`
	PostCount   int       `json:"post_count"`
	GeneratedAt string    `json:"generated_at"`
	Posts       []Summary `json:"posts"`
}

// Build projects the fetched entries and assembles a Report.
// The summaries keep the upstream order (reverse-chronological).
func Build(did, handle string, entries []bluesky.FeedEntry, now time.Time) Report {
	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, Summarize(entry, handle, now))
	}

	return Report{
		DID:         did,
		Handle:      handle,
		PostCount:   len(summaries),
		GeneratedAt: now.UTC().Format(PostDateFormat),
		Posts:       summaries,
	}
}
