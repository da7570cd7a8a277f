// Package feeds fetches posts from external content sources for the
// aggregated feed. Sources are independent and read-only; a failing source
// is the caller's concern to tolerate.
package feeds

import "context"

// Post is one entry in the aggregated feed. Field names follow the wire
// format exposed by the API.
type Post struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Subreddit   string  `json:"subreddit"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Thumbnail   string  `json:"thumbnail"`
	Selftext    string  `json:"selftext"`
}

// Source is a single external content source queried per sort mode.
type Source interface {
	Name() string
	Fetch(ctx context.Context, sort string) ([]Post, error)
}
