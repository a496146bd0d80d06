package server

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velantec/streamfolio/internal/config"
	"github.com/velantec/streamfolio/internal/contact"
	"github.com/velantec/streamfolio/internal/content"
	"github.com/velantec/streamfolio/internal/preload"
	"github.com/velantec/streamfolio/internal/profile"
	"github.com/velantec/streamfolio/internal/store"
)

type testServer struct {
	*httptest.Server
	store   *store.Store
	preload *preload.Cache
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.Mode = "test"
	cfg.RevealName = "Ab C"
	cfg.RevealInterval = time.Millisecond
	cfg.RevealPause = time.Millisecond
	cfg.RevealEmphasis = time.Millisecond
	cfg.ContactDelay = 0

	st, err := store.Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cache := preload.New(AssetFetcher("", nil), preload.WithTimeout(time.Second))
	srv, err := New(Deps{
		Config:  cfg,
		Catalog: content.MustLoad(),
		Preload: cache,
		Store:   st,
		Contact: contact.NewService(st, nil, 0, nil),
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, store: st, preload: cache}
}

// client does not follow redirects so tests can inspect them.
func (ts *testServer) client() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
}

func (ts *testServer) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := ts.client().Get(ts.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestPagesRender(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path string
		want string
	}{
		{"/", "data-intro-stream"},
		{"/browse", "Who&#39;s watching?"},
		{"/profile/investor", "Investor View"},
		{"/about", "About"},
		{"/projects", "VELANTEC"},
		{"/projects/velantec", "VELANTEC"},
		{"/case-studies", "Case Studies"},
		{"/case-studies/velantec-security", "VELANTEC: Cybersecurity"},
		{"/skills", "skill-list"},
		{"/work-experience", "Work Experience"},
		{"/testimonials", "Testimonials"},
		{"/search?q=seo", "Search"},
		{"/privacy", "Do Not Track"},
		{"/contact", `<label>Message <textarea name="message"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := ts.get(t, tt.path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, tt.want)
		})
	}
}

func TestUnknownProfileFallsBackToRecruiter(t *testing.T) {
	ts := newTestServer(t)
	resp, body := ts.get(t, "/profile/unknown")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Recruiter View")
}

func TestProfileSetsPersonaCookie(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := ts.get(t, "/profile/stalker")
	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == personaCookie {
			found = true
			assert.Equal(t, "stalker", c.Value)
		}
	}
	assert.True(t, found)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/about", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: personaCookie, Value: "stalker"})
	resp, err = ts.client().Do(req)
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "persona-stalker")
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/projects/nope", "/case-studies/nope", "/no/such/page"} {
		resp, body := ts.get(t, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Contains(t, body, "not found", path)
	}
}

func TestCaseStudyIndustryFilter(t *testing.T) {
	ts := newTestServer(t)

	_, body := ts.get(t, "/case-studies?industry=Cybersecurity")
	assert.Contains(t, body, `data-industry="Cybersecurity"`)
	assert.NotContains(t, body, `data-industry="Logistics"`)

	resp, body := ts.get(t, "/case-studies?industry=Gardening")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "No case studies in this industry yet.")
}

func TestIntroStream(t *testing.T) {
	ts := newTestServer(t)
	resp, body := ts.get(t, "/intro/stream")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	start := strings.Index(body, "event:start")
	reveal := strings.Index(body, "event:reveal")
	emphasis := strings.Index(body, "event:emphasis")
	done := strings.Index(body, "event:done")
	require.True(t, start >= 0 && reveal > start && emphasis > reveal && done > emphasis, body)
	// one reveal per glyph, spacer included
	assert.Equal(t, 4, strings.Count(body, "event:reveal"))
	assert.Contains(t, body, `"next":"/browse"`)
}

func TestThemeAPI(t *testing.T) {
	ts := newTestServer(t)

	var got struct {
		Profile  string `json:"profile"`
		Fallback bool   `json:"fallback"`
		Theme    struct {
			Primary string `json:"primary"`
		} `json:"theme"`
	}
	_, body := ts.get(t, "/api/profiles/x/theme")
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "recruiter", got.Profile)
	assert.True(t, got.Fallback)
	assert.NotEmpty(t, got.Theme.Primary)

	_, body = ts.get(t, "/api/profiles/investor/theme")
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "investor", got.Profile)
	assert.False(t, got.Fallback)
}

func TestPreloadAPIDeduplicates(t *testing.T) {
	ts := newTestServer(t)

	post := func() []string {
		body := `{"urls":["/images/profiles/stalker.png","/images/profiles/stalker.png","/images/logos/aval-logo.png"]}`
		resp, err := ts.client().Post(ts.URL+"/api/preload", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
		var got struct {
			Scheduled []string `json:"scheduled"`
		}
		require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &got))
		return got.Scheduled
	}

	assert.Equal(t, []string{"/images/profiles/stalker.png", "/images/logos/aval-logo.png"}, post())
	assert.Empty(t, post())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, ts.preload.Wait(ctx))
	assert.Equal(t, preload.Loaded, ts.preload.Status("/images/profiles/stalker.png"))

	resp, err := ts.client().Post(ts.URL+"/api/preload", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPreloadAPIRejectsUnknownURLs(t *testing.T) {
	ts := newTestServer(t)

	body := `{"urls":["/junk/1.png","http://169.254.169.254/latest/meta-data","//evil.example/x.png","/placeholder.svg?text=spam","/avatar/investor.svg"]}`
	resp, err := ts.client().Post(ts.URL+"/api/preload", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	var got struct {
		Scheduled []string `json:"scheduled"`
		Rejected  []string `json:"rejected"`
	}
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &got))
	assert.Equal(t, []string{"/avatar/investor.svg"}, got.Scheduled)
	assert.Len(t, got.Rejected, 4)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, ts.preload.Wait(ctx))
	snap := ts.preload.Snapshot()
	for _, u := range got.Rejected {
		assert.NotContains(t, snap, u)
	}
}

func TestAssetFetcher(t *testing.T) {
	f := AssetFetcher("", nil)
	ctx := context.Background()

	assert.NoError(t, f.Fetch(ctx, "/images/profiles/recruiter.png"))
	assert.NoError(t, f.Fetch(ctx, "/placeholder.svg?height=80&width=120&text=x"))
	assert.NoError(t, f.Fetch(ctx, "/avatar/stalker.svg"))
	assert.Error(t, f.Fetch(ctx, "/images/profiles/nobody.png"))
	assert.Error(t, f.Fetch(ctx, "https://example.com/x.png"))
}

func TestCriticalImagesAreEmbedded(t *testing.T) {
	f := AssetFetcher("", nil)
	for route, urls := range preload.CriticalImages {
		for _, u := range urls {
			assert.NoError(t, f.Fetch(context.Background(), u), "%s needs %s", route, u)
		}
	}
}

func TestGeneratedImages(t *testing.T) {
	ts := newTestServer(t)

	resp, body := ts.get(t, "/placeholder.svg?width=120&height=80&text=Hi")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "<svg")

	resp, body = ts.get(t, "/avatar/investor.svg")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ">I<")

	resp, _ = ts.get(t, "/avatar/investor.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchAPI(t *testing.T) {
	ts := newTestServer(t)

	var got struct {
		Query   string                 `json:"query"`
		Results []content.SearchResult `json:"results"`
	}
	_, body := ts.get(t, "/api/search?q=a")
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.NotNil(t, got.Results)
	assert.Empty(t, got.Results)

	_, body = ts.get(t, "/api/search?q=velantec")
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.NotEmpty(t, got.Results)
}

func TestContactForm(t *testing.T) {
	ts := newTestServer(t)

	t.Run("invalid", func(t *testing.T) {
		resp, err := ts.client().PostForm(ts.URL+"/contact", url.Values{"name": {"Ann"}, "email": {"nope"}})
		require.NoError(t, err)
		body := readBody(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "valid email")
		assert.Contains(t, body, `<form class="contact-form"`)
		assert.Contains(t, body, `value="Ann"`)
	})

	t.Run("htmx success", func(t *testing.T) {
		form := url.Values{"name": {"Ann"}, "email": {"ann@example.com"}, "message": {"Hello there"}}
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/contact", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("HX-Request", "true")
		resp, err := ts.client().Do(req)
		require.NoError(t, err)
		body := readBody(t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Thank you for your message!")
		assert.NotContains(t, body, "<html")

		msgs, err := ts.store.Messages(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "ann@example.com", msgs[0].Email)
	})
}

func TestNewsletterIsIdempotent(t *testing.T) {
	ts := newTestServer(t)

	subscribe := func(email string) (int, string) {
		resp, err := ts.client().PostForm(ts.URL+"/newsletter", url.Values{"email": {email}})
		require.NoError(t, err)
		body := readBody(t, resp)
		return resp.StatusCode, body
	}

	code, body := subscribe("fan@example.com")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Thanks for subscribing!")

	code, body = subscribe("FAN@example.com")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "already subscribed")

	code, _ = subscribe("not-an-email")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, body := ts.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)
}

func TestAdmin(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.get(t, "/admin/dashboard")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))

	resp, body := ts.get(t, "/admin/api/stats")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "error")

	resp, err := ts.client().PostForm(ts.URL+"/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "Invalid credentials")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = ts.client().PostForm(ts.URL+"/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	require.NoError(t, err)
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	var token *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == adminCookie {
			token = c
		}
	}
	require.NotNil(t, token)

	authed := func(path string) (*http.Response, string) {
		req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: adminCookie, Value: token.Value})
		resp, err := ts.client().Do(req)
		require.NoError(t, err)
		return resp, readBody(t, resp)
	}

	resp, body = authed("/admin/dashboard")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Signed in as admin")

	resp, body = authed("/admin/api/stats")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "total_visitors")

	resp, _ = authed("/admin/messages")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = authed("/admin/visitors")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminTokenRejectsOtherSecret(t *testing.T) {
	a := &Server{cfg: &config.Config{JWTSecret: "one"}}
	b := &Server{cfg: &config.Config{JWTSecret: "two"}}

	tok, err := a.issueAdminToken("admin")
	require.NoError(t, err)
	claims, err := a.parseAdminToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	_, err = b.parseAdminToken(tok)
	assert.Error(t, err)
}

func TestAdminRejectsTokenSignedWithSampleSecret(t *testing.T) {
	ts := newTestServer(t)
	forger := &Server{cfg: &config.Config{JWTSecret: "change-me-streamfolio-dev-secret"}}
	tok, err := forger.issueAdminToken("admin")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/admin/api/stats", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: tok})
	resp, err := ts.client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTemplateErrorIsServerError(t *testing.T) {
	s := &Server{templates: template.Must(template.New("").Parse(`{{define "bad.html"}}<p>{{.x.y}}</p>{{end}}`))}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	s.html(c, http.StatusOK, "bad.html", gin.H{"x": 1})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "<p>")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	s.html(c, http.StatusOK, "missing.html", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestProfileHeroFallbackIsTinted(t *testing.T) {
	ts := newTestServer(t)
	_, body := ts.get(t, "/profile/investor")
	assert.Contains(t, body, "color=0077B5")

	_, body = ts.get(t, "/profile/adventurer")
	assert.Contains(t, body, "color=1DB954")
}

func TestFeaturedSkillsFallsBackToTopSkills(t *testing.T) {
	c := &content.Catalog{Skills: []content.Skill{
		{Name: "Go", Category: "Technology", Proficiency: 80},
		{Name: "Sales", Category: "Business", Proficiency: 70},
	}}

	view := profile.View{Highlight: func(s content.Skill) bool { return s.Category == "Business" }}
	got := featuredSkills(c, view)
	require.Len(t, got, 1)
	assert.Equal(t, "Sales", got[0].Name)

	view.Highlight = func(content.Skill) bool { return false }
	assert.Equal(t, c.Skills, featuredSkills(c, view))
}
