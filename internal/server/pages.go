package server

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/velantec/streamfolio/internal/contact"
	"github.com/velantec/streamfolio/internal/content"
	"github.com/velantec/streamfolio/internal/ctxlog"
	"github.com/velantec/streamfolio/internal/profile"
)

type timelineGroup struct {
	Label string
	Type  content.TimelineType
	Items []content.TimelineItem
}

func (s *Server) timelineGroups() []timelineGroup {
	return []timelineGroup{
		{"Work Experience", content.TimelineWork, s.catalog.TimelineOf(content.TimelineWork)},
		{"Education", content.TimelineEducation, s.catalog.TimelineOf(content.TimelineEducation)},
		{"Achievements", content.TimelineAchievement, s.catalog.TimelineOf(content.TimelineAchievement)},
	}
}

// featuredSkills is the persona's highlighted skills, or the catalog's top
// skills when the persona's filter matches nothing.
func featuredSkills(c *content.Catalog, v profile.View) []content.Skill {
	if skills := c.FilterSkills(v.Highlight); len(skills) > 0 {
		return skills
	}
	return c.TopSkills(8)
}

func (s *Server) registerPages(r *gin.Engine) {
	// Profile selection route
	r.GET("/browse", func(c *gin.Context) {
		s.render(c, http.StatusOK, "browse.html", gin.H{
			"title":    "Who's watching?",
			"profiles": s.catalog.Profiles,
		})
	})

	// Per-persona dashboard route; unknown names render the recruiter view
	r.GET("/profile/:name", func(c *gin.Context) {
		p := profile.OrDefault(c.Param("name"))
		c.Set(personaKey, p)
		c.SetCookie(personaCookie, string(p), 3600*24*30, "/", "", false, true)

		view := profile.ViewFor(p)
		record, _ := s.catalog.ProfileByName(string(p))
		s.render(c, http.StatusOK, "profile.html", gin.H{
			"title":        view.Title,
			"view":         view,
			"profile":      record,
			"highlights":   s.catalog.Highlights,
			"highlighted":  featuredSkills(s.catalog, view),
			"timeline":     s.timelineGroups(),
			"caseStudies":  s.catalog.CaseStudies,
			"clients":      s.catalog.Clients,
			"projects":     s.catalog.Projects,
			"tagline":      content.Tagline,
			"testimonials": s.catalog.Testimonials,
		})
	})

	// About route
	r.GET("/about", func(c *gin.Context) {
		s.render(c, http.StatusOK, "about.html", gin.H{
			"title":    "About Me",
			"tagline":  content.Tagline,
			"about":    content.AboutMe,
			"story":    []string{content.StoryVentures, content.StoryNow},
			"ventures": s.catalog.Ventures,
		})
	})

	// Projects routes
	r.GET("/projects", func(c *gin.Context) {
		s.render(c, http.StatusOK, "projects.html", gin.H{
			"title":    "Projects",
			"projects": s.catalog.Projects,
		})
	})

	r.GET("/projects/:id", func(c *gin.Context) {
		p, ok := s.catalog.ProjectByID(c.Param("id"))
		if !ok {
			s.notFound(c, "Project", "/projects")
			return
		}
		s.render(c, http.StatusOK, "project.html", gin.H{
			"title":   p.Title,
			"project": p,
		})
	})

	// Case studies routes
	r.GET("/case-studies", func(c *gin.Context) {
		industry := c.Query("industry")
		industries := s.catalog.Industries()
		studies := s.catalog.CaseStudiesByIndustry(industry)
		if industry != "" && !slices.Contains(industries, industry) {
			studies = nil
		}
		data := gin.H{
			"title":      "Case Studies",
			"industries": industries,
			"industry":   industry,
			"studies":    studies,
		}
		if len(s.catalog.CaseStudies) > 0 {
			data["featured"] = s.catalog.CaseStudies[0]
		}
		s.render(c, http.StatusOK, "case_studies.html", data)
	})

	r.GET("/case-studies/:id", func(c *gin.Context) {
		cs, ok := s.catalog.CaseStudyByID(c.Param("id"))
		if !ok {
			s.notFound(c, "Case Study", "/case-studies")
			return
		}
		var related []content.CaseStudy
		for _, other := range s.catalog.CaseStudies {
			if other.ID != cs.ID && len(related) < 3 {
				related = append(related, other)
			}
		}
		s.render(c, http.StatusOK, "case_study.html", gin.H{
			"title":   cs.Title,
			"study":   cs,
			"related": related,
		})
	})

	// Skills route
	r.GET("/skills", func(c *gin.Context) {
		category := c.Query("category")
		s.render(c, http.StatusOK, "skills.html", gin.H{
			"title":      "Skills",
			"categories": s.catalog.SkillCategories(),
			"category":   category,
			"skills":     s.catalog.SkillsByCategory(category),
		})
	})

	// Work experience route
	r.GET("/work-experience", func(c *gin.Context) {
		s.render(c, http.StatusOK, "work.html", gin.H{
			"title":    "Work Experience",
			"timeline": s.timelineGroups(),
		})
	})

	// Testimonials route
	r.GET("/testimonials", func(c *gin.Context) {
		s.render(c, http.StatusOK, "testimonials.html", gin.H{
			"title":        "Testimonials",
			"testimonials": s.catalog.Testimonials,
		})
	})

	// Search route
	r.GET("/search", func(c *gin.Context) {
		q := c.Query("q")
		s.render(c, http.StatusOK, "search.html", gin.H{
			"title":   "Search",
			"query":   q,
			"results": s.catalog.Search(q),
			"short":   q != "" && len([]rune(q)) < content.MinQueryLen,
		})
	})

	// Privacy policy route
	r.GET("/privacy", func(c *gin.Context) {
		s.render(c, http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	// Contact routes
	r.GET("/contact", func(c *gin.Context) {
		s.render(c, http.StatusOK, "contact.html", gin.H{
			"title": "Contact",
			"blurb": content.ContactBlurb,
			"form":  contact.Form{},
		})
	})

	// Handle contact form submission with HTMX or a plain form post
	r.POST("/contact", func(c *gin.Context) {
		logger := ctxlog.FromContext(c.Request.Context())
		htmx := c.GetHeader("HX-Request") == "true"

		var form contact.Form
		if err := c.ShouldBind(&form); err != nil {
			s.contactResult(c, htmx, http.StatusBadRequest, form, "", "Please fill in your name, a valid email and a message.")
			return
		}

		if _, err := s.contact.Submit(c.Request.Context(), form); err != nil {
			logger.Error("contact submission failed", "error", err)
			s.contactResult(c, htmx, http.StatusInternalServerError, form, "",
				"Sorry, there was an error sending your message. Please try again later.")
			return
		}
		s.contactResult(c, htmx, http.StatusOK, contact.Form{}, "Thank you for your message! I'll get back to you soon.", "")
	})

	// Newsletter signup
	r.POST("/newsletter", func(c *gin.Context) {
		created, err := s.contact.Subscribe(c.Request.Context(), c.PostForm("email"))

		code, data := http.StatusOK, gin.H{"success": "Thanks for subscribing!"}
		switch {
		case errors.Is(err, contact.ErrInvalidEmail):
			code, data = http.StatusBadRequest, gin.H{"error": err.Error()}
		case err != nil:
			ctxlog.FromContext(c.Request.Context()).Error("newsletter signup failed", "error", err)
			code, data = http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."}
		case !created:
			data = gin.H{"success": "You're already subscribed."}
		}
		if c.GetHeader("HX-Request") == "true" {
			code = http.StatusOK
		}
		s.html(c, code, "newsletter_result.html", data)
	})
}

// contactResult answers HTMX with a toast fragment and plain posts with the
// full page. HTMX only swaps 2xx responses, so fragments are always 200.
func (s *Server) contactResult(c *gin.Context, htmx bool, code int, form contact.Form, success, failure string) {
	data := gin.H{"success": success, "error": failure}
	if htmx {
		s.html(c, http.StatusOK, "contact_result.html", data)
		return
	}
	data["title"] = "Contact"
	data["blurb"] = content.ContactBlurb
	data["form"] = form
	s.render(c, code, "contact.html", data)
}
