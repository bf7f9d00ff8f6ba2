package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "pagecache"

type cachedPage struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyCapture duplicates the response body while it streams to the client.
type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCache serves successful GET responses from Redis, keyed by path and
// query. With a nil client it is a pass-through, so the site works the
// same without Redis. Cache failures fall through to the handler.
func PageCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c.Request.URL.Path, c.Request.URL.RawQuery)
		ctx := c.Request.Context()

		if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
			var page cachedPage
			if json.Unmarshal(raw, &page) == nil {
				c.Header("X-Cache", "HIT")
				c.Data(http.StatusOK, page.ContentType, page.Body)
				c.Abort()
				return
			}
		}

		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture
		c.Header("X-Cache", "MISS")

		c.Next()

		if capture.Status() == http.StatusOK {
			page := cachedPage{
				ContentType: capture.Header().Get("Content-Type"),
				Body:        capture.buf.Bytes(),
			}
			if raw, err := json.Marshal(page); err == nil {
				_ = rdb.SetEx(context.Background(), key, raw, ttl).Err()
			}
		}
	}
}

func cacheKey(path, query string) string {
	sum := sha1.Sum([]byte(path + "?" + query))
	return cacheKeyPrefix + ":" + hex.EncodeToString(sum[:])
}
