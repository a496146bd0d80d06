package server

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/velantec/streamfolio/internal/ctxlog"
)

const (
	adminCookie   = "admin_token"
	adminTokenTTL = 24 * time.Hour
)

// adminClaims is the payload of the admin session cookie.
type adminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (s *Server) issueAdminToken(username string) (string, error) {
	now := time.Now()
	claims := adminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "streamfolio",
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *Server) parseAdminToken(raw string) (*adminClaims, error) {
	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithIssuer("streamfolio"))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid admin token")
	}
	return claims, nil
}

// checkAdmin compares credentials against config. A bcrypt hash, when set,
// replaces the plain password.
func (s *Server) checkAdmin(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUser)) == 1
	var passOK bool
	if s.cfg.AdminPassHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPassHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPass)) == 1
	}
	return userOK && passOK
}

// adminAuth redirects pages to the login form and rejects API calls with
// 401 when the session cookie is missing or invalid.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(adminCookie)
		if err == nil {
			if claims, err := s.parseAdminToken(raw); err == nil {
				c.Set("admin", claims.Username)
				c.Next()
				return
			}
		}
		if strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
	}
}

func (s *Server) registerAdmin(r *gin.Engine) {
	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		s.html(c, http.StatusOK, "admin_login.html", gin.H{
			"title": "Admin Login",
		})
	})

	// Admin login handler
	r.POST("/admin/login", func(c *gin.Context) {
		logger := ctxlog.FromContext(c.Request.Context())
		username := c.PostForm("username")
		password := c.PostForm("password")
		who := s.store.HashIP(c.ClientIP())

		if !s.checkAdmin(username, password) {
			logger.Warn("failed admin login attempt", "from", who)
			s.html(c, http.StatusUnauthorized, "admin_login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		token, err := s.issueAdminToken(username)
		if err != nil {
			logger.Error("could not issue admin token", "error", err)
			s.html(c, http.StatusInternalServerError, "admin_error.html", gin.H{
				"error": "Login failed",
			})
			return
		}
		secure := s.cfg.Mode == gin.ReleaseMode && strings.HasPrefix(s.cfg.SiteURL, "https://")
		c.SetCookie(adminCookie, token, int(adminTokenTTL.Seconds()), "/admin", "", secure, true)
		logger.Info("admin login successful", "from", who)
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	// Admin logout
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	admin := r.Group("/admin", s.adminAuth())

	// Admin dashboard
	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			ctxlog.FromContext(c.Request.Context()).Error("error loading admin stats", "error", err)
			s.html(c, http.StatusInternalServerError, "admin_error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		s.html(c, http.StatusOK, "admin_dashboard.html", gin.H{
			"title": "Dashboard",
			"stats": stats,
			"user":  c.GetString("admin"),
		})
	})

	// Admin API endpoint for HTMX/AJAX refresh
	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	// Contact inbox
	admin.GET("/messages", func(c *gin.Context) {
		msgs, err := s.store.Messages(c.Request.Context(), 200)
		if err != nil {
			ctxlog.FromContext(c.Request.Context()).Error("error loading messages", "error", err)
			s.html(c, http.StatusInternalServerError, "admin_error.html", gin.H{
				"error": "Failed to load messages",
			})
			return
		}
		s.html(c, http.StatusOK, "admin_messages.html", gin.H{
			"title":    "Messages",
			"messages": msgs,
		})
	})

	// Recent visitors
	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.Visitors(c.Request.Context(), 200)
		if err != nil {
			s.html(c, http.StatusInternalServerError, "admin_error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		s.html(c, http.StatusOK, "admin_visitors.html", gin.H{
			"title":    "Visitors",
			"visitors": visitors,
		})
	})

	// Statistics export
	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})

	// Privacy cleanup of visitor rows older than twelve months
	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.store.Cleanup(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})
}
