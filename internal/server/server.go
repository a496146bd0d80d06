// Package server is the HTTP surface of the portfolio: gin routes, page
// rendering, the intro event stream, JSON endpoints and the admin area.
package server

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velantec/streamfolio/internal/avatar"
	"github.com/velantec/streamfolio/internal/config"
	"github.com/velantec/streamfolio/internal/contact"
	"github.com/velantec/streamfolio/internal/content"
	"github.com/velantec/streamfolio/internal/ctxlog"
	"github.com/velantec/streamfolio/internal/preload"
	"github.com/velantec/streamfolio/internal/profile"
	"github.com/velantec/streamfolio/internal/reveal"
	"github.com/velantec/streamfolio/internal/store"
	"github.com/velantec/streamfolio/web"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Config  *config.Config
	Catalog *content.Catalog
	Preload *preload.Cache
	Store   *store.Store
	Contact *contact.Service
	Logger  *slog.Logger
}

// Server owns the gin engine and everything the handlers read.
type Server struct {
	cfg       *config.Config
	catalog   *content.Catalog
	preload   *preload.Cache
	store     *store.Store
	contact   *contact.Service
	logger    *slog.Logger
	templates *template.Template
	assets    map[string]struct{}
	startedAt time.Time
}

// New parses the embedded templates and returns a ready Server.
func New(d Deps) (*Server, error) {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	tmpl, err := template.New("").Funcs(funcMap()).ParseFS(web.Templates(), "*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{
		cfg:       d.Config,
		catalog:   d.Catalog,
		preload:   d.Preload,
		store:     d.Store,
		contact:   d.Contact,
		logger:    d.Logger,
		templates: tmpl,
		assets:    knownAssets(d.Catalog),
		startedAt: time.Now(),
	}, nil
}

// Engine builds the gin engine with every route mounted.
func (s *Server) Engine() *gin.Engine {
	switch s.cfg.Mode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(s.cfg.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.personaMiddleware(), s.visitorTracking())

	r.StaticFS("/images", http.FS(web.Sub("images")))
	r.StaticFS("/static", http.FS(web.Sub("static")))
	r.StaticFS("/sounds", http.FS(web.Sub("sounds")))

	s.registerPages(r)
	s.registerIntro(r)
	s.registerAPI(r)
	s.registerAdmin(r)

	r.NoRoute(func(c *gin.Context) {
		s.notFound(c, "Page", "/browse")
	})
	return r
}

// RunMaintenance runs the privacy cleanup now and then once a day until ctx
// is cancelled.
func (s *Server) RunMaintenance(ctx context.Context) {
	cleanup := func() {
		if _, err := s.store.Cleanup(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("error cleaning up old visitor data", "error", err)
		}
	}
	cleanup()

	t := time.NewTicker(24 * time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			cleanup()
		}
	}
}

type navLink struct {
	Label string
	Href  string
}

var navLinks = []navLink{
	{"Home", ""},
	{"Projects", "/projects"},
	{"Case Studies", "/case-studies"},
	{"Skills", "/skills"},
	{"Experience", "/work-experience"},
	{"Testimonials", "/testimonials"},
	{"About", "/about"},
	{"Contact", "/contact"},
}

// render executes a page template with the data every page shares.
func (s *Server) render(c *gin.Context, code int, name string, data gin.H) {
	p := personaOf(c)
	home := "/browse"
	if p != profile.None {
		home = "/profile/" + string(p)
	}
	path := c.Request.URL.Path

	h := gin.H{
		"siteName": content.FullName,
		"fullName": content.FullName,
		"persona":  string(p),
		"theme":    profile.ThemeFor(p),
		"home":     home,
		"nav":      navLinks,
		"path":     path,
		"preload":  preload.CriticalFor(path),
		"year":     time.Now().Year(),
	}
	for k, v := range data {
		h[k] = v
	}
	s.html(c, code, name, h)
}

// html executes a template into a buffer first, so a template error answers
// 500 instead of a 200 with a truncated body.
func (s *Server) html(c *gin.Context, code int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		ctxlog.FromContext(c.Request.Context()).Error("error rendering template", "template", name, "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(code, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) notFound(c *gin.Context, what, back string) {
	s.render(c, http.StatusNotFound, "not_found.html", gin.H{
		"title": what + " Not Found",
		"what":  what,
		"back":  back,
	})
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"placeholder": avatar.PlaceholderURL,
		"tinted": func(text string, t profile.Theme, width, height int) string {
			return avatar.ColoredPlaceholderURL(text, strings.TrimPrefix(t.Primary, "#"), width, height)
		},
		"initials": func(name string) template.URL {
			return template.URL(avatar.Initials(name, 150))
		},
		"themeVars": func(t profile.Theme) template.CSS {
			return template.CSS(fmt.Sprintf(
				"--primary:%s;--secondary:%s;--accent:%s;--background:%s",
				t.Primary, t.Secondary, t.Accent, t.Background,
			))
		},
		"width": func(pct int) template.CSS {
			return template.CSS(fmt.Sprintf("width:%d%%", pct))
		},
		"letters": reveal.Layout,
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"active": func(path, href string) bool {
			if href == "" {
				return strings.HasPrefix(path, "/profile/") || path == "/browse"
			}
			return path == href || strings.HasPrefix(path, href+"/")
		},
	}
}
