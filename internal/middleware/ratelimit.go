package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// RateLimit applies a per-client-IP token bucket. The limiter table is an
// LRU so a scan of spoofed addresses cannot grow memory without bound.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiters, _ := lru.New[string, *rate.Limiter](10000) // only fails on a non-positive size
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter, ok := limiters.Get(ip)
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			limiters.Add(ip, limiter)
		}
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}
