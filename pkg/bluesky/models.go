package bluesky

// Profile represents the app.bsky.actor.getProfile response for an actor.
// Fields absent from the response decode to their zero values.
type Profile struct {
	DID            string `json:"did"`
	Handle         string `json:"handle"`
	DisplayName    string `json:"displayName"`
	Avatar         string `json:"avatar"`
	FollowersCount int    `json:"followersCount"`
	FollowsCount   int    `json:"followsCount"`
	PostsCount     int    `json:"postsCount"`
}

// AuthorFeed represents one page of the app.bsky.feed.getAuthorFeed response.
// An empty Cursor means the last page has been reached.
type AuthorFeed struct {
	Feed   []FeedEntry `json:"feed"`
	Cursor string      `json:"cursor"`
}

// FeedEntry wraps a single post in the author's timeline
type FeedEntry struct {
	Post Post `json:"post"`
}

// Post represents a post view with its engagement counters
type Post struct {
	URI         string     `json:"uri"`
	CID         string     `json:"cid"`
	Record      PostRecord `json:"record"`
	LikeCount   int        `json:"likeCount"`
	RepostCount int        `json:"repostCount"`
	ReplyCount  int        `json:"replyCount"`
	QuoteCount  int        `json:"quoteCount"`
}

// PostRecord holds the authored content of a post
type PostRecord struct {
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}
