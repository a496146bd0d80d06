package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/velantec/streamfolio/internal/ctxlog"
	"github.com/velantec/streamfolio/internal/profile"
)

const (
	personaKey    = "persona"
	personaCookie = "persona"
)

// requestLogger puts a request-scoped logger in the request context and
// logs each request once it completes.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		logger := s.logger.With("request_id", uuid.NewString())
		c.Request = c.Request.WithContext(ctxlog.WithLogger(c.Request.Context(), logger))

		c.Next()

		path := c.Request.URL.Path
		if isAssetPath(path) && c.Writer.Status() < 400 {
			return
		}
		logger.Info("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// personaMiddleware resolves the active persona from the URL, falling back
// to the last persona chosen on /browse, and warms the route's critical
// images.
func (s *Server) personaMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isAssetPath(path) {
			c.Next()
			return
		}

		p, ok := profile.FromPath(path)
		if !ok {
			if v, err := c.Cookie(personaCookie); err == nil {
				p, _ = profile.Parse(v)
			}
		}
		c.Set(personaKey, p)

		if c.Request.Method == http.MethodGet && s.preload != nil {
			s.preload.PreloadForPath(c.Request.Context(), path)
		}
		c.Next()
	}
}

func personaOf(c *gin.Context) profile.Name {
	if v, ok := c.Get(personaKey); ok {
		if p, ok := v.(profile.Name); ok {
			return p
		}
	}
	return profile.None
}

// visitorTracking records page views with hashed IPs in the background.
// Static files, admin pages and API calls are skipped, and DNT is honoured.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !trackable(path) || c.GetHeader("DNT") == "1" || s.store == nil {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		logger := ctxlog.FromContext(c.Request.Context())
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.RecordVisit(ctx, ip, ua, path); err != nil {
				logger.Warn("error recording visitor", "error", err)
			}
		}()
		c.Next()
	}
}

var untracked = []string{
	"/static/", "/images/", "/sounds/", "/admin", "/favicon", "/privacy",
	"/api/", "/healthz", "/intro/stream", "/placeholder.svg", "/avatar/",
}

func trackable(path string) bool {
	for _, p := range untracked {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

func isAssetPath(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/images/") ||
		strings.HasPrefix(path, "/sounds/") ||
		strings.HasPrefix(path, "/favicon")
}
