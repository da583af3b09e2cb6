package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mundiclass/backend/pkg/logger"
)

// ResponseCache caches successful GET responses in Redis
type ResponseCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewResponseCache creates a new response cache
func NewResponseCache(redisClient *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{redis: redisClient, ttl: ttl}
}

type cachingWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (cw *cachingWriter) WriteHeader(code int) {
	cw.statusCode = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *cachingWriter) Write(b []byte) (int, error) {
	cw.body.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Middleware caches GET responses under a key derived from the request URI
func (c *ResponseCache) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c.redis == nil || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := cacheKey(r)
		if cached, err := c.redis.Get(r.Context(), key).Bytes(); err == nil && len(cached) > 0 {
			logger.Logger.Debug().
				Str("path", r.URL.Path).
				Str("cache_key", key).
				Msg("Cache hit")

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write(cached)
			return
		}

		cw := &cachingWriter{ResponseWriter: w, statusCode: http.StatusOK}
		cw.Header().Set("X-Cache", "MISS")
		next.ServeHTTP(cw, r)

		if cw.statusCode == http.StatusOK && cw.body.Len() > 0 {
			if err := c.redis.Set(r.Context(), key, cw.body.Bytes(), c.ttl).Err(); err != nil {
				logger.Logger.Warn().
					Err(err).
					Str("cache_key", key).
					Msg("Failed to store response in cache")
			}
		}
	}
}

// Invalidate drops all cached responses whose path starts with the given prefix.
// Called by write handlers after a successful mutation.
func (c *ResponseCache) Invalidate(ctx context.Context, prefix string) {
	if c.redis == nil {
		return
	}

	iter := c.redis.Scan(ctx, 0, "cache:"+prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.redis.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("prefix", prefix).
			Msg("Cache invalidation failed")
	}
}

func cacheKey(r *http.Request) string {
	sum := sha256.Sum256([]byte(r.URL.RequestURI()))
	return "cache:" + r.URL.Path + ":" + hex.EncodeToString(sum[:8])
}
