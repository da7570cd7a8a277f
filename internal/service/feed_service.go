package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/config"
	"go-coach-app/internal/feeds"
	"go-coach-app/internal/logger"
)

const (
	// feedLimit caps the number of posts returned per sort mode.
	feedLimit = 50
	// excerptLimit caps each post's free-text excerpt, in runes.
	excerptLimit = 300
)

var validSorts = map[string]bool{"hot": true, "new": true, "top": true}

// FeedCache is the per-sort-mode TTL cache slot backing the aggregator.
type FeedCache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
}

// FeedService aggregates posts from the configured external sources.
type FeedService struct {
	sources []feeds.Source
	cache   FeedCache
	ttl     time.Duration
	log     logger.Logger
}

// NewFeedService creates a new FeedService.
func NewFeedService(sources []feeds.Source, cache FeedCache, cfg config.FeedsConfig, log logger.Logger) *FeedService {
	return &FeedService{
		sources: sources,
		cache:   cache,
		ttl:     time.Duration(cfg.CacheTTL) * time.Second,
		log:     log,
	}
}

// List returns the ranked, truncated feed for a sort mode. A fresh cache
// entry is returned without touching the network. On a miss, all sources are
// queried concurrently; individual failures are logged and omitted, and the
// call fails only when every source fails, leaving any previous cache entry
// in place.
func (s *FeedService) List(ctx context.Context, sortMode string) ([]feeds.Post, error) {
	if !validSorts[sortMode] {
		sortMode = "hot"
	}
	cacheKey := "feeds:" + sortMode

	if cached, err := s.cache.Get(cacheKey); err != nil {
		s.log.Error(err, "feed cache read failed")
	} else if cached != nil {
		var posts []feeds.Post
		if err := json.Unmarshal(cached, &posts); err == nil {
			return posts, nil
		}
		s.log.Warn("discarding undecodable feed cache entry")
	}

	// Fan out one fetch per source. Results land in declared source order so
	// the merge below never depends on completion order.
	results := make([][]feeds.Post, len(s.sources))
	errs := make([]error, len(s.sources))
	var wg sync.WaitGroup
	for i, source := range s.sources {
		wg.Add(1)
		go func(i int, source feeds.Source) {
			defer wg.Done()
			results[i], errs[i] = source.Fetch(ctx, sortMode)
		}(i, source)
	}
	wg.Wait()

	posts := []feeds.Post{}
	succeeded := 0
	for i, source := range s.sources {
		if errs[i] != nil {
			s.log.With(map[string]interface{}{"source": source.Name()}).Warn(fmt.Sprintf("failed to fetch source: %v", errs[i]))
			continue
		}
		succeeded++
		posts = append(posts, results[i]...)
	}
	if succeeded == 0 {
		return nil, apperr.New(apperr.Upstream, "Failed to fetch feeds.")
	}

	// Stable sort: ties keep the declared source order from the concat above.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Score > posts[j].Score
	})
	if len(posts) > feedLimit {
		posts = posts[:feedLimit]
	}
	for i := range posts {
		if excerpt := []rune(posts[i].Selftext); len(excerpt) > excerptLimit {
			posts[i].Selftext = string(excerpt[:excerptLimit])
		}
	}

	encoded, err := json.Marshal(posts)
	if err != nil {
		s.log.Error(err, "failed to encode feed cache entry")
		return posts, nil
	}
	if err := s.cache.Set(cacheKey, encoded, s.ttl); err != nil {
		// Benign: the next request refetches.
		s.log.Error(err, "feed cache write failed")
	}
	return posts, nil
}
