package content

import (
	"html/template"
	"regexp"
	"strings"
)

// Project is a venture shown on the projects page and in content rows.
type Project struct {
	ID              string   `yaml:"id" json:"id"`
	Title           string   `yaml:"title" json:"title"`
	Description     string   `yaml:"description" json:"description"`
	Image           string   `yaml:"image" json:"image"`
	TechUsed        string   `yaml:"tech_used" json:"tech_used"`
	GitHub          string   `yaml:"github,omitempty" json:"github,omitempty"`
	LiveURL         string   `yaml:"live_url,omitempty" json:"live_url,omitempty"`
	Features        []string `yaml:"features,omitempty" json:"features,omitempty"`
	Challenges      string   `yaml:"challenges,omitempty" json:"challenges,omitempty"`
	LongDescription string   `yaml:"long_description,omitempty" json:"long_description,omitempty"`
}

// Tech splits the comma separated tech list into trimmed tokens.
func (p Project) Tech() []string {
	var out []string
	for _, t := range strings.Split(p.TechUsed, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// LongHTML returns the authored long description as trusted HTML.
// The text is hand-written content from the embedded catalog.
func (p Project) LongHTML() template.HTML {
	return template.HTML(p.LongDescription)
}

// Metric is one label/value pair on a case study.
type Metric struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Quote is the client testimonial attached to a case study.
type Quote struct {
	Quote    string `yaml:"quote" json:"quote"`
	Author   string `yaml:"author" json:"author"`
	Position string `yaml:"position" json:"position"`
}

// CaseStudy is a long-form write-up of one engagement.
type CaseStudy struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Company     string   `yaml:"company" json:"company"`
	Industry    string   `yaml:"industry" json:"industry"`
	Image       string   `yaml:"image" json:"image"`
	Metrics     []Metric `yaml:"metrics" json:"metrics"`
	Challenge   string   `yaml:"challenge" json:"challenge"`
	Solution    string   `yaml:"solution" json:"solution"`
	Results     string   `yaml:"results" json:"results"`
	Testimonial Quote    `yaml:"testimonial" json:"testimonial"`
}

// Skill is a single competency with a 0-100 proficiency.
type Skill struct {
	Name        string `yaml:"name" json:"name"`
	Category    string `yaml:"category" json:"category"`
	Proficiency int    `yaml:"proficiency" json:"proficiency"`
	Description string `yaml:"description" json:"description"`
}

// Slug is the anchor used on the skills page.
func (s Skill) Slug() string { return slugify(s.Name) }

// TimelineType classifies a timeline entry.
type TimelineType string

const (
	TimelineWork        TimelineType = "work"
	TimelineEducation   TimelineType = "education"
	TimelineAchievement TimelineType = "achievement"
)

// Valid reports whether t is one of the known timeline types.
func (t TimelineType) Valid() bool {
	switch t {
	case TimelineWork, TimelineEducation, TimelineAchievement:
		return true
	}
	return false
}

// TimelineItem is a dated record of work, education or an achievement.
type TimelineItem struct {
	Name      string       `yaml:"name" json:"name"`
	Title     string       `yaml:"title" json:"title"`
	DateRange string       `yaml:"date_range" json:"date_range"`
	Type      TimelineType `yaml:"type" json:"type"`
	Summary   []string     `yaml:"summary" json:"summary"`
}

// Slug is the lower-case name with whitespace runs replaced by "-".
func (t TimelineItem) Slug() string { return slugify(t.Name) }

// Testimonial is a quote from a client or colleague.
type Testimonial struct {
	Name     string `yaml:"name" json:"name"`
	Position string `yaml:"position" json:"position"`
	Company  string `yaml:"company" json:"company"`
	Image    string `yaml:"image" json:"image"`
	Quote    string `yaml:"quote" json:"quote"`
}

// Profile is one of the five viewer personas on the browse page.
type Profile struct {
	Name        string `yaml:"name" json:"name"`
	Image       string `yaml:"image" json:"image"`
	Alt         string `yaml:"alt" json:"alt"`
	Background  string `yaml:"background" json:"background"`
	Description string `yaml:"description" json:"description"`
}

// JourneyHighlight is a hero card on the profile dashboard that links to a
// timeline entry.
type JourneyHighlight struct {
	ID          string       `yaml:"id" json:"id"`
	Title       string       `yaml:"title" json:"title"`
	Date        string       `yaml:"date" json:"date"`
	Description string       `yaml:"description" json:"description"`
	Image       string       `yaml:"image" json:"image"`
	Type        TimelineType `yaml:"type" json:"type"`
	TimelineID  string       `yaml:"timeline_id" json:"timeline_id"`
}

// ClientLogo is a client shown in the logo strip.
type ClientLogo struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Image string `yaml:"image" json:"image"`
	Link  string `yaml:"link" json:"link"`
}

// Venture is a company card on the about page.
type Venture struct {
	Name        string `yaml:"name" json:"name"`
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description" json:"description"`
	Logo        string `yaml:"logo" json:"logo"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func slugify(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}
