package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bskyreport/pkg/bluesky"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func testEntry(text, createdAt, uri string) bluesky.FeedEntry {
	return bluesky.FeedEntry{Post: bluesky.Post{
		URI:    uri,
		Record: bluesky.PostRecord{Text: text, CreatedAt: createdAt},
	}}
}

func TestSummarize(t *testing.T) {
	t.Run("first line stops at the line break", func(t *testing.T) {
		s := Summarize(testEntry("Hello\nWorld", "2024-01-15T10:30:00Z", ""), "alice.bsky.social", testNow)
		assert.Equal(t, "Hello", s.FirstLine)
		assert.Equal(t, "Hello\nWorld", s.Text)
	})

	t.Run("single line text is its own first line", func(t *testing.T) {
		s := Summarize(testEntry("Hello world", "2024-01-15T10:30:00Z", ""), "alice.bsky.social", testNow)
		assert.Equal(t, "Hello world", s.FirstLine)
	})

	t.Run("absent text yields empty first line", func(t *testing.T) {
		s := Summarize(testEntry("", "2024-01-15T10:30:00Z", ""), "alice.bsky.social", testNow)
		assert.Equal(t, "", s.FirstLine)
	})

	t.Run("timestamp formatted as UTC", func(t *testing.T) {
		s := Summarize(testEntry("x", "2024-01-15T10:30:00Z", ""), "alice.bsky.social", testNow)
		assert.Equal(t, "2024-01-15 10:30:00 UTC", s.PostDate)
	})

	t.Run("timestamp with offset converted to UTC", func(t *testing.T) {
		s := Summarize(testEntry("x", "2024-01-15T12:30:00+02:00", ""), "alice.bsky.social", testNow)
		assert.Equal(t, "2024-01-15 10:30:00 UTC", s.PostDate)
	})

	t.Run("unparseable timestamp falls back to the raw string", func(t *testing.T) {
		s := Summarize(testEntry("x", "not-a-timestamp", ""), "alice.bsky.social", testNow)
		assert.Equal(t, "not-a-timestamp", s.PostDate)
		assert.Equal(t, "not-a-timestamp", s.RelativeDate)
	})

	t.Run("post URL built from URI and handle", func(t *testing.T) {
		s := Summarize(testEntry("x", "2024-01-15T10:30:00Z", "at://did:plc:abc/app.bsky.feed.post/xyz123"), "alice.bsky.social", testNow)
		assert.Equal(t, "https://bsky.app/profile/alice.bsky.social/post/xyz123", s.PostURL)
		assert.Equal(t, "at://did:plc:abc/app.bsky.feed.post/xyz123", s.URI)
	})

	t.Run("engagement counts default to zero", func(t *testing.T) {
		s := Summarize(testEntry("x", "2024-01-15T10:30:00Z", ""), "alice.bsky.social", testNow)
		assert.Zero(t, s.Likes)
		assert.Zero(t, s.Reposts)
		assert.Zero(t, s.Replies)
		assert.Zero(t, s.Quotes)
	})

	t.Run("engagement counts carried through", func(t *testing.T) {
		entry := bluesky.FeedEntry{Post: bluesky.Post{
			URI:         "at://did:plc:abc/app.bsky.feed.post/xyz",
			Record:      bluesky.PostRecord{Text: "x", CreatedAt: "2024-01-15T10:30:00Z"},
			LikeCount:   7,
			RepostCount: 3,
			ReplyCount:  2,
			QuoteCount:  1,
		}}
		s := Summarize(entry, "alice.bsky.social", testNow)
		assert.Equal(t, 7, s.Likes)
		assert.Equal(t, 3, s.Reposts)
		assert.Equal(t, 2, s.Replies)
		assert.Equal(t, 1, s.Quotes)
	})
}

func TestPostURL(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		handle string
		want   string
	}{
		{
			"known handle and URI",
			"at://did:plc:abc/app.bsky.feed.post/xyz123",
			"alice.bsky.social",
			"https://bsky.app/profile/alice.bsky.social/post/xyz123",
		},
		{"unknown handle placeholder suppresses URL", "at://did:plc:abc/app.bsky.feed.post/xyz123", UnknownHandle, ""},
		{"empty handle suppresses URL", "at://did:plc:abc/app.bsky.feed.post/xyz123", "", ""},
		{"empty URI yields no URL", "", "alice.bsky.social", ""},
		{"trailing slash yields no URL", "at://did:plc:abc/app.bsky.feed.post/", "alice.bsky.social", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostURL(tt.uri, tt.handle))
		})
	}
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"under a minute", 45 * time.Second, "just now"},
		{"zero", 0, "just now"},
		{"exactly one minute", time.Minute, "1m ago"},
		{"forty-five minutes", 45 * time.Minute, "45m ago"},
		{"one hour", time.Hour, "1h ago"},
		{"five hours", 5 * time.Hour, "5h ago"},
		{"one day", 24 * time.Hour, "1d ago"},
		{"three days", 3 * 24 * time.Hour, "3d ago"},
		{"six days", 6*24*time.Hour + 23*time.Hour, "6d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(testNow.Add(-tt.ago), testNow))
		})
	}

	t.Run("a week or older uses the absolute date", func(t *testing.T) {
		assert.Equal(t, "Mar 08, 2024", RelativeTime(testNow.Add(-7*24*time.Hour), testNow))
		assert.Equal(t, "Feb 14, 2024", RelativeTime(testNow.Add(-30*24*time.Hour), testNow))
	})
}
