package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-coach-app/internal/config"
)

const userAgent = "go-coach-app-feeds/1.0"

// redditSource fetches one subreddit's listing for a sort mode.
type redditSource struct {
	client    *http.Client
	baseURL   string
	subreddit string
	limit     int
}

// NewRedditSources builds one Source per configured subreddit, sharing a
// single HTTP client with the configured per-source timeout.
func NewRedditSources(cfg config.FeedsConfig) []Source {
	client := &http.Client{Timeout: time.Duration(cfg.FetchTimeout) * time.Second}
	sources := make([]Source, 0, len(cfg.Sources))
	for _, name := range cfg.Sources {
		sources = append(sources, &redditSource{
			client:    client,
			baseURL:   cfg.BaseURL,
			subreddit: name,
			limit:     cfg.PerSourceSize,
		})
	}
	return sources
}

func (s *redditSource) Name() string {
	return s.subreddit
}

// Fetch retrieves the subreddit listing for the given sort mode.
func (s *redditSource) Fetch(ctx context.Context, sort string) ([]Post, error) {
	url := fmt.Sprintf("%s/r/%s/%s.json?limit=%d", s.baseURL, s.subreddit, sort, s.limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for r/%s: %w", s.subreddit, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch r/%s: %w", s.subreddit, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("r/%s returned status %d", s.subreddit, resp.StatusCode)
	}

	var listing struct {
		Data struct {
			Children []struct {
				Data struct {
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
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode r/%s listing: %w", s.subreddit, err)
	}

	posts := make([]Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		p := child.Data
		subreddit := p.Subreddit
		if subreddit == "" {
			subreddit = s.subreddit
		}
		posts = append(posts, Post{
			Title:       p.Title,
			URL:         p.URL,
			Permalink:   p.Permalink,
			Subreddit:   subreddit,
			Author:      p.Author,
			Score:       p.Score,
			NumComments: p.NumComments,
			CreatedUTC:  p.CreatedUTC,
			Thumbnail:   p.Thumbnail,
			Selftext:    p.Selftext,
		})
	}
	return posts, nil
}
