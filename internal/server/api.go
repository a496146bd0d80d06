package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velantec/streamfolio/internal/avatar"
	"github.com/velantec/streamfolio/internal/content"
	"github.com/velantec/streamfolio/internal/profile"
)

func (s *Server) registerAPI(r *gin.Engine) {
	// Generated placeholder image
	r.GET("/placeholder.svg", func(c *gin.Context) {
		var p avatar.Params
		// malformed numbers fall back to defaults inside PlaceholderSVG
		_ = c.ShouldBindQuery(&p)
		svgResponse(c, avatar.PlaceholderSVG(p))
	})

	// Initials avatar for a persona or person
	r.GET("/avatar/:file", func(c *gin.Context) {
		name, ok := strings.CutSuffix(c.Param("file"), ".svg")
		if !ok || name == "" {
			c.Status(http.StatusNotFound)
			return
		}
		svgResponse(c, avatar.InitialsSVG(name, 150))
	})

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(s.startedAt).Round(time.Second).String(),
		})
	})

	api := r.Group("/api")

	// Persona theme; unknown names resolve to the fallback persona
	api.GET("/profiles/:name/theme", func(c *gin.Context) {
		n, ok := profile.Parse(c.Param("name"))
		if !ok {
			n = profile.Fallback
		}
		c.JSON(http.StatusOK, gin.H{
			"profile":  n,
			"fallback": !ok,
			"theme":    profile.ThemeFor(n),
		})
	})

	// Preload status
	api.GET("/preload", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"loading": s.preload.IsLoading(),
			"status":  s.preload.Snapshot(),
		})
	})

	// Schedule preloads; only known site assets are accepted
	api.POST("/preload", func(c *gin.Context) {
		var body struct {
			URLs []string `json:"urls" binding:"required,max=100"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		accepted, rejected := []string{}, []string{}
		for _, u := range body.URLs {
			if _, ok := s.assets[u]; ok {
				accepted = append(accepted, u)
			} else {
				rejected = append(rejected, u)
			}
		}
		scheduled := s.preload.Preload(c.Request.Context(), accepted)
		if scheduled == nil {
			scheduled = []string{}
		}
		c.JSON(http.StatusAccepted, gin.H{"scheduled": scheduled, "rejected": rejected})
	})

	// Search
	api.GET("/search", func(c *gin.Context) {
		q := c.Query("q")
		results := s.catalog.Search(q)
		if results == nil {
			results = []content.SearchResult{}
		}
		c.JSON(http.StatusOK, gin.H{"query": q, "results": results})
	})
}

func svgResponse(c *gin.Context, svg string) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}
