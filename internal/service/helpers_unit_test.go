//go:build unit

package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"go-coach-app/internal/cache"
	"go-coach-app/internal/config"
	"go-coach-app/internal/logger"
)

// noopLogger discards everything; unit tests assert on behavior, not logs.
type noopLogger struct{}

var _ logger.Logger = (*noopLogger)(nil)

func (noopLogger) Debug(msg string)                          {}
func (noopLogger) Info(msg string)                           {}
func (noopLogger) Warn(msg string)                           {}
func (noopLogger) Error(err error, msg string)               {}
func (noopLogger) Fatal(err error, msg string)               {}
func (l noopLogger) With(map[string]interface{}) logger.Logger { return l }

var testCacheSeq int64

// newTestCache creates a new in-memory cache for testing. Each call gets its
// own named database with a shared cache, so every pooled connection sees the
// same tables while tests stay isolated from each other.
func newTestCache(t *testing.T) (*cache.Cache, func()) {
	t.Helper()
	cfg := config.CacheConfig{
		FilePath: fmt.Sprintf("file:cache_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testCacheSeq, 1)),
	}
	c, err := cache.New(cfg)
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	teardown := func() {
		c.Close()
	}
	return c, teardown
}
