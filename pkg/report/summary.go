package report

import (
	"fmt"
	"strings"
	"time"

	"bskyreport/pkg/bluesky"
)

const (
	// SiteBaseURL is the public web front end for Bluesky posts
	SiteBaseURL = "https://bsky.app"

	// UnknownHandle is the placeholder used when handle resolution fails.
	// It suppresses post URL construction.
	UnknownHandle = "Unknown"

	// PostDateFormat renders absolute post timestamps
	PostDateFormat = "2006-01-02 15:04:05 UTC"
)

// Summary is the flat projection of one feed entry. Every field has a
// defined default; projection never fails, it degrades field-by-field.
type Summary struct {
	Handle       string `json:"handle"`
	PostDate     string `json:"post_date"`
	RelativeDate string `json:"relative_date"`
	PostURL      string `json:"post_url"`
	Text         string `json:"text"`
	FirstLine    string `json:"first_line"`
	Likes        int    `json:"likes"`
	Reposts      int    `json:"reposts"`
	Replies      int    `json:"replies"`
	Quotes       int    `json:"quotes"`
	URI          string `json:"uri"`
}

// Summarize projects a raw feed entry into a Summary. The handle is the
// author's resolved handle, or UnknownHandle when resolution failed.
// now anchors relative timestamps.
func Summarize(entry bluesky.FeedEntry, handle string, now time.Time) Summary {
	post := entry.Post
	text := post.Record.Text

	postDate := post.Record.CreatedAt
	relativeDate := post.Record.CreatedAt
	if createdAt, err := time.Parse(time.RFC3339, post.Record.CreatedAt); err == nil {
		postDate = createdAt.UTC().Format(PostDateFormat)
		relativeDate = RelativeTime(createdAt, now)
	}

	return Summary{
		Handle:       handle,
		PostDate:     postDate,
		RelativeDate: relativeDate,
		PostURL:      PostURL(post.URI, handle),
		Text:         text,
		FirstLine:    firstLine(text),
		Likes:        post.LikeCount,
		Reposts:      post.RepostCount,
		Replies:      post.ReplyCount,
		Quotes:       post.QuoteCount,
		URI:          post.URI,
	}
}

// firstLine returns the text up to the first line break
func firstLine(text string) string {
	if text == "" {
		return ""
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

// PostURL builds the canonical web URL for a post from its AT-URI,
// e.g. at://did:plc:abc/app.bsky.feed.post/xyz123. The URL is only
// constructed when the handle is known and the URI's final path segment
// (the post's record key) is non-empty.
func PostURL(uri, handle string) string {
	if handle == "" || handle == UnknownHandle {
		return ""
	}

	postID := uri
	if i := strings.LastIndexByte(uri, '/'); i >= 0 {
		postID = uri[i+1:]
	}
	if postID == "" {
		return ""
	}

	return fmt.Sprintf("%s/profile/%s/post/%s", SiteBaseURL, handle, postID)
}

// RelativeTime buckets the distance between t and now into a short
// human-readable string. Singular forms are not pluralized.
func RelativeTime(t, now time.Time) string {
	seconds := now.Sub(t).Seconds()

	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", int(seconds/60))
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", int(seconds/3600))
	case seconds < 604800:
		return fmt.Sprintf("%dd ago", int(seconds/86400))
	default:
		return t.UTC().Format("Jan 02, 2006")
	}
}
