package bluesky

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the base URL of the unauthenticated Bluesky AppView API
	DefaultBaseURL = "https://public.api.bsky.app/xrpc"

	// ProfileEndpoint is the identity-lookup endpoint
	ProfileEndpoint = "/app.bsky.actor.getProfile"

	// AuthorFeedEndpoint is the paginated feed-lookup endpoint
	AuthorFeedEndpoint = "/app.bsky.feed.getAuthorFeed"

	// MaxPageSize is the upstream maximum for the feed limit parameter
	MaxPageSize = 100

	// DIDPrefix distinguishes DIDs from handles
	DIDPrefix = "did:"

	// DefaultHandleSuffix is appended to bare usernames without a domain
	DefaultHandleSuffix = ".bsky.social"
)

// ProfileURL constructs the URL for fetching an actor's profile
func ProfileURL(baseURL, actor string) string {
	params := url.Values{}
	params.Set("actor", actor)

	return fmt.Sprintf("%s%s?%s", baseURL, ProfileEndpoint, params.Encode())
}

// AuthorFeedURL constructs the URL for one page of an actor's feed.
// An empty cursor requests the first page.
func AuthorFeedURL(baseURL, actor string, limit int, cursor string) string {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	params := url.Values{}
	params.Set("actor", actor)
	params.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	return fmt.Sprintf("%s%s?%s", baseURL, AuthorFeedEndpoint, params.Encode())
}

// IsDID reports whether the identifier is a DID rather than a handle
func IsDID(actor string) bool {
	return strings.HasPrefix(actor, DIDPrefix)
}

// NormalizeActor cleans up a user-supplied identifier. DIDs pass through
// unchanged. Handles lose a leading "@", and bare usernames without a
// domain get the default suffix appended.
func NormalizeActor(actor string) string {
	actor = strings.TrimSpace(actor)
	if IsDID(actor) {
		return actor
	}

	actor = strings.TrimPrefix(actor, "@")
	if actor != "" && !strings.Contains(actor, ".") {
		actor += DefaultHandleSuffix
	}

	return actor
}
