package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velantec/streamfolio/internal/ctxlog"
	"github.com/velantec/streamfolio/internal/reveal"
)

func (s *Server) timing() reveal.Timing {
	return reveal.Timing{
		Interval: s.cfg.RevealInterval,
		Pause:    s.cfg.RevealPause,
		Emphasis: s.cfg.RevealEmphasis,
	}
}

func (s *Server) registerIntro(r *gin.Engine) {
	// Intro route: logo, then the name reveal streamed from /intro/stream
	r.GET("/", func(c *gin.Context) {
		s.render(c, http.StatusOK, "intro.html", gin.H{
			"title":    s.cfg.RevealName,
			"name":     s.cfg.RevealName,
			"interval": s.cfg.RevealInterval.Milliseconds(),
		})
	})

	// Server-sent reveal sequence. Each tick carries the revealed prefix;
	// emphasis and done follow once. A disconnect cancels the sequence.
	r.GET("/intro/stream", func(c *gin.Context) {
		logger := ctxlog.FromContext(c.Request.Context())
		seq := reveal.New(s.cfg.RevealName, s.timing())

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)

		send := func(event string, data any) {
			c.SSEvent(event, data)
			c.Writer.Flush()
		}
		send("start", gin.H{"letters": reveal.LetterCount(seq.Glyphs()), "glyphs": len(seq.Glyphs())})

		err := seq.Run(c.Request.Context(), reveal.Hooks{
			OnTick: func(k int, prefix []reveal.Glyph) {
				send("reveal", gin.H{"revealed": k, "text": reveal.Text(prefix)})
			},
			OnEmphasis: func() {
				send("emphasis", gin.H{"text": s.cfg.RevealName})
			},
			OnDone: func() {
				send("done", gin.H{"next": "/browse"})
			},
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("reveal stream ended early", "error", err)
		}
	})
}
