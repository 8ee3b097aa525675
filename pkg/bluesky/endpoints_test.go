package bluesky

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileURL(t *testing.T) {
	url := ProfileURL(DefaultBaseURL, "alice.bsky.social")
	assert.Equal(t, "https://public.api.bsky.app/xrpc/app.bsky.actor.getProfile?actor=alice.bsky.social", url)
}

func TestProfileURLEscapesActor(t *testing.T) {
	url := ProfileURL(DefaultBaseURL, "did:plc:z72i7hdynmk6r22z27h6tvur")
	assert.Contains(t, url, "actor=did%3Aplc%3Az72i7hdynmk6r22z27h6tvur")
}

func TestAuthorFeedURL(t *testing.T) {
	t.Run("first page has no cursor", func(t *testing.T) {
		url := AuthorFeedURL(DefaultBaseURL, "did:plc:abc", 50, "")
		assert.Contains(t, url, AuthorFeedEndpoint)
		assert.Contains(t, url, "limit=50")
		assert.NotContains(t, url, "cursor")
	})

	t.Run("cursor is threaded through", func(t *testing.T) {
		url := AuthorFeedURL(DefaultBaseURL, "did:plc:abc", 50, "2024-01-15T10:30:00Z::abc")
		assert.Contains(t, url, "cursor=2024-01-15T10%3A30%3A00Z%3A%3Aabc")
	})

	t.Run("out-of-range limit falls back to the page cap", func(t *testing.T) {
		assert.Contains(t, AuthorFeedURL(DefaultBaseURL, "a", 0, ""), "limit=100")
		assert.Contains(t, AuthorFeedURL(DefaultBaseURL, "a", 500, ""), "limit=100")
	})
}

func TestIsDID(t *testing.T) {
	assert.True(t, IsDID("did:plc:z72i7hdynmk6r22z27h6tvur"))
	assert.True(t, IsDID("did:web:example.com"))
	assert.False(t, IsDID("alice.bsky.social"))
	assert.False(t, IsDID(""))
}

func TestNormalizeActor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare username gets default suffix", "alice", "alice.bsky.social"},
		{"leading @ is stripped", "@bob.example.com", "bob.example.com"},
		{"@ and no domain", "@carol", "carol.bsky.social"},
		{"fully qualified handle unchanged", "alice.bsky.social", "alice.bsky.social"},
		{"DID passes through", "did:plc:z72i7hdynmk6r22z27h6tvur", "did:plc:z72i7hdynmk6r22z27h6tvur"},
		{"surrounding whitespace trimmed", "  alice  ", "alice.bsky.social"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeActor(tt.input))
		})
	}
}
