package ratelimit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"seatforge/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Middleware creates a simple rate limiting middleware
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get client IP
		clientIP := getClientIP(c)
		
		// Determine rate limit type from route
		limitType := getRateLimitType(c.FullPath())
		
		// Check rate limit
		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusInternalServerError, 
				"Rate limit check failed", nil, nil)
			c.Abort()
			return
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		// Check if rate limited
		if !result.Allowed {
			response.RespondJSON(c, "error", http.StatusTooManyRequests, 
				"Rate limit exceeded", nil, map[string]interface{}{
					"limit": result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

// SessionMiddleware enforces SEAT_HOLD_MAX_PER_MINUTE (§6): a session's
// hold-grant requests are capped independently of its IP, since many
// sessions can share one IP behind a venue's proxy or campus NAT. The
// session id is read from the JSON body and the body is restored so the
// downstream handler can still bind it.
func SessionMiddleware(rateLimiter *RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "invalid request body", nil, nil)
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var parsed struct {
			SessionID string `json:"sessionId"`
		}
		_ = json.Unmarshal(body, &parsed)

		if parsed.SessionID == "" {
			c.Next()
			return
		}

		result, err := rateLimiter.IsAllowedForSession(c.Request.Context(), parsed.SessionID, limit, window)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusInternalServerError, "rate limit check failed", nil, nil)
			c.Abort()
			return
		}
		if !result.Allowed {
			response.RespondJSON(c, "error", http.StatusTooManyRequests, "hold rate limit exceeded", nil, map[string]interface{}{
				"limit":      result.Limit,
				"reset_time": result.ResetTime,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getRateLimitType determines rate limit type based on route
func getRateLimitType(path string) RateLimitType {
	switch {
	case strings.Contains(path, "/auth/"):
		return RateLimitTypeAuth
	case strings.Contains(path, "/admin/"):
		return RateLimitTypeAdmin
	case strings.Contains(path, "/booking"):
		return RateLimitTypeBooking
	case strings.Contains(path, "/analytics"):
		return RateLimitTypeAnalytics
	case strings.Contains(path, "/events") || strings.Contains(path, "/tags"):
		return RateLimitTypePublic
	default:
		return RateLimitTypeDefault
	}
}

// getClientIP extracts real client IP
func getClientIP(c *gin.Context) string {
	// Check X-Forwarded-For header
	xForwardedFor := c.GetHeader("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	// Check X-Real-IP header
	xRealIP := c.GetHeader("X-Real-IP")
	if xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	// Fall back to RemoteAddr
	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	
	return ip
}
