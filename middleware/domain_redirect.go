package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DomainRedirect answers 301 for requests arriving on a legacy or www host,
// pointing at the canonical domain with the original path and query kept.
// A no-op when no canonical host is configured.
func DomainRedirect(canonicalHost string, redirectHosts []string) gin.HandlerFunc {
	sources := make(map[string]bool, len(redirectHosts))
	for _, host := range redirectHosts {
		if host = strings.ToLower(strings.TrimSpace(host)); host != "" {
			sources[host] = true
		}
	}

	return func(c *gin.Context) {
		if canonicalHost == "" || len(sources) == 0 {
			c.Next()
			return
		}

		hostname := strings.ToLower(c.Request.Host)
		if idx := strings.IndexByte(hostname, ':'); idx >= 0 {
			hostname = hostname[:idx]
		}

		if sources[hostname] {
			target := "https://" + canonicalHost + c.Request.URL.RequestURI()
			c.Redirect(http.StatusMovedPermanently, target)
			c.Abort()
			return
		}
		c.Next()
	}
}
