// Package bluesky provides a read-only client for the Bluesky public
// AppView API.
//
// This package includes:
//   - A configurable HTTP client with a fixed timeout and request pacing
//   - Type-safe models for profile and author-feed responses
//   - Helper functions for constructing API endpoints
//   - Handle/DID normalization
//
// Example usage:
//
//	client := bluesky.NewClient(&cfg.API, log)
//
//	profile, err := client.FetchProfile(bluesky.NormalizeActor("alice"))
//	if err != nil {
//	    if apiErr, ok := err.(*errors.Error); ok {
//	        switch apiErr.Type {
//	        case errors.ErrorTypeNotFound:
//	            // Handle unknown actor
//	        case errors.ErrorTypeRateLimit:
//	            // Handle rate limit
//	        }
//	    }
//	}
//
//	entries := client.FetchAuthorPosts(profile.DID, 100)
package bluesky
