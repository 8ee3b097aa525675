package bluesky

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"bskyreport/pkg/config"
	"bskyreport/pkg/errors"
	"bskyreport/pkg/logger"
)

// Client is a read-only client for the Bluesky public API.
// It is a plain value constructed per invocation; no global state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
	headers    map[string]string
	limiter    *rate.Limiter
	logger     logger.Logger
}

// NewClient creates a new Bluesky API client from the given configuration
func NewClient(cfg *config.APIConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "bskyreport/1.0"
	}

	// Politeness pacing only; 429s are still surfaced as typed errors.
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		pageSize:   pageSize,
		headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		},
		limiter: limiter,
		logger:  log,
	}
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// doRequest performs an HTTP request with the configured headers
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, errors.New(errors.ErrorTypeNetwork, fmt.Sprintf("rate limiter wait: %v", err))
		}
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.WithFields(map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	}).Debug("sending HTTP request")

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		}).Error("HTTP request failed")
		return nil, errors.New(errors.ErrorTypeNetwork, fmt.Sprintf("network error: %v", err))
	}

	c.logger.WithFields(map[string]interface{}{
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	}).Debug("HTTP request completed")

	return resp, nil
}

// Get performs a GET request to the specified URL
func (c *Client) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.New(errors.ErrorTypeUnknown, fmt.Sprintf("failed to create request: %v", err))
	}

	return c.doRequest(req)
}

// GetJSON performs a GET request and decodes the JSON response into target
func (c *Client) GetJSON(url string, target interface{}) error {
	resp, err := c.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.WithFields(map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"body_preview": bodyPreview,
		}).Error("failed to parse JSON response")
		return &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return nil
}

// checkResponseStatus maps non-2xx responses to typed errors
func (c *Client) checkResponseStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	errType := errors.TypeForStatusCode(resp.StatusCode)
	c.logger.WithFields(map[string]interface{}{
		"status": resp.StatusCode,
		"url":    resp.Request.URL.String(),
	}).Warn("unexpected API response status")

	return &errors.Error{
		Type:    errType,
		Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
		Code:    resp.StatusCode,
	}
}

// FetchProfile fetches an actor's profile by handle or DID.
// The actor should already be normalized (see NormalizeActor).
func (c *Client) FetchProfile(actor string) (*Profile, error) {
	url := ProfileURL(c.baseURL, actor)

	c.logger.WithField("actor", actor).Debug("fetching profile")

	var profile Profile
	if err := c.GetJSON(url, &profile); err != nil {
		c.logger.WithFields(map[string]interface{}{
			"actor": actor,
			"error": err.Error(),
		}).Warn("failed to fetch profile")
		return nil, err
	}

	return &profile, nil
}

// FetchAuthorFeed fetches one page of an actor's feed.
// An empty cursor requests the first page.
func (c *Client) FetchAuthorFeed(actor string, limit int, cursor string) (*AuthorFeed, error) {
	url := AuthorFeedURL(c.baseURL, actor, limit, cursor)

	c.logger.WithFields(map[string]interface{}{
		"actor":  actor,
		"limit":  limit,
		"cursor": cursor,
	}).Debug("fetching author feed page")

	var feed AuthorFeed
	if err := c.GetJSON(url, &feed); err != nil {
		return nil, err
	}

	return &feed, nil
}

// FetchAuthorPosts fetches up to limit posts from an actor's feed, following
// pagination cursors. A request failure mid-pagination stops the loop and the
// entries accumulated so far are returned; partial results are not an error.
// Entries come back in the order delivered upstream (reverse-chronological).
func (c *Client) FetchAuthorPosts(actor string, limit int) []FeedEntry {
	var posts []FeedEntry
	cursor := ""

	for len(posts) < limit {
		pageSize := limit - len(posts)
		if pageSize > c.pageSize {
			pageSize = c.pageSize
		}

		page, err := c.FetchAuthorFeed(actor, pageSize, cursor)
		if err != nil {
			c.logger.WithFields(map[string]interface{}{
				"actor":   actor,
				"fetched": len(posts),
				"error":   err.Error(),
			}).Warn("feed fetch failed, returning partial results")
			break
		}

		if len(page.Feed) == 0 {
			break
		}

		posts = append(posts, page.Feed...)

		cursor = page.Cursor
		if cursor == "" {
			break
		}
	}

	// Never hand back more than requested, even if upstream over-delivers.
	if len(posts) > limit {
		posts = posts[:limit]
	}

	c.logger.WithFields(map[string]interface{}{
		"actor": actor,
		"count": len(posts),
	}).Info("fetched posts")

	return posts
}
