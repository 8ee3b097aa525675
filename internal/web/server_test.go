package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bskyreport/pkg/bluesky"
	"bskyreport/pkg/config"
	"bskyreport/pkg/logger"
)

// newUpstream simulates the Bluesky public API with one known actor
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case bluesky.ProfileEndpoint:
			if r.URL.Query().Get("actor") != "alice.bsky.social" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(bluesky.Profile{
				DID:            "did:plc:abc",
				Handle:         "alice.bsky.social",
				DisplayName:    "Alice",
				FollowersCount: 1234,
				FollowsCount:   56,
				PostsCount:     789,
			})
		case bluesky.AuthorFeedEndpoint:
			json.NewEncoder(w).Encode(bluesky.AuthorFeed{
				Feed: []bluesky.FeedEntry{
					{Post: bluesky.Post{
						URI:       "at://did:plc:abc/app.bsky.feed.post/xyz123",
						Record:    bluesky.PostRecord{Text: "Hello\nWorld", CreatedAt: "2024-01-15T10:30:00Z"},
						LikeCount: 5,
					}},
					{Post: bluesky.Post{
						URI:    "at://did:plc:abc/app.bsky.feed.post/abc456",
						Record: bluesky.PostRecord{Text: "Second post", CreatedAt: "2024-01-15T09:00:00Z"},
					}},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestServer(t *testing.T, upstreamURL string) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.API.BaseURL = upstreamURL
	cfg.API.Timeout = 5 * time.Second
	cfg.API.RequestsPerMinute = 0

	log := logger.NewTestLogger()
	client := bluesky.NewClient(&cfg.API, log)

	server, err := NewServer(cfg, client, log)
	require.NoError(t, err)
	return server
}

func TestHandleIndex(t *testing.T) {
	upstream := newUpstream(t)
	defer upstream.Close()
	server := newTestServer(t, upstream.URL)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bluesky Post Reporter")
	assert.Contains(t, rec.Body.String(), `name="handle"`)
}

func TestHandleReport(t *testing.T) {
	upstream := newUpstream(t)
	defer upstream.Close()
	server := newTestServer(t, upstream.URL)

	t.Run("missing handle renders the form with an error", func(t *testing.T) {
		form := url.Values{"handle": {""}}
		req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please enter a Bluesky handle")
	})

	t.Run("unknown handle renders the form with the upstream error", func(t *testing.T) {
		form := url.Values{"handle": {"nobody.bsky.social"}}
		req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Error:")
	})

	t.Run("successful report renders the post table", func(t *testing.T) {
		// A bare username gets normalized before resolution
		form := url.Values{"handle": {"@alice"}, "limit": {"10"}}
		req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "@alice.bsky.social")
		assert.Contains(t, body, "1,234 followers")
		assert.Contains(t, body, "https://bsky.app/profile/alice.bsky.social/post/xyz123")
	})
}

func TestHandleAPIReport(t *testing.T) {
	upstream := newUpstream(t)
	defer upstream.Close()
	server := newTestServer(t, upstream.URL)

	t.Run("successful report", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report/alice?limit=10", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var result UserReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

		assert.True(t, result.Success)
		require.NotNil(t, result.User)
		assert.Equal(t, "did:plc:abc", result.User.DID)
		assert.Equal(t, 2, result.PostCount)
		require.Len(t, result.Posts, 2)

		// The web schema carries full text and relative dates
		assert.Equal(t, "Hello\nWorld", result.Posts[0].Text)
		assert.Equal(t, "Hello", result.Posts[0].FirstLine)
		assert.NotEmpty(t, result.Posts[0].RelativeDate)
	})

	t.Run("resolution failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report/nobody.bsky.social", nil))

		assert.Equal(t, http.StatusOK, rec.Code)

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, false, result["success"])
		assert.NotEmpty(t, result["error"])
	})
}

func TestHandleChart(t *testing.T) {
	upstream := newUpstream(t)
	defer upstream.Close()
	server := newTestServer(t, upstream.URL)

	t.Run("renders chart page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chart?handle=alice", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Engagement for @alice.bsky.social")

		// Both posts fall into the same date bucket; the index prefix
		// keeps the axis labels distinct.
		assert.Contains(t, body, "#1 (Jan 15, 2024)")
		assert.Contains(t, body, "#2 (Jan 15, 2024)")
	})

	t.Run("missing handle", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chart", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown handle", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chart?handle=nobody.bsky.social", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestClampLimit(t *testing.T) {
	upstream := newUpstream(t)
	defer upstream.Close()
	server := newTestServer(t, upstream.URL)

	assert.Equal(t, server.cfg.Server.DefaultLimit, server.clampLimit(0))
	assert.Equal(t, server.cfg.Server.DefaultLimit, server.clampLimit(-3))
	assert.Equal(t, 25, server.clampLimit(25))
	assert.Equal(t, server.cfg.Server.MaxLimit, server.clampLimit(10000))
}
