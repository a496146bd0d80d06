// Package profile derives the active viewer persona from a request path and
// maps it to a colour theme and a dashboard layout.
package profile

import (
	"regexp"
	"slices"
	"strings"

	"github.com/velantec/streamfolio/internal/content"
)

// Name is one of the five fixed personas.
type Name string

const (
	None       Name = ""
	Stalker    Name = "stalker"
	Investor   Name = "investor"
	Recruiter  Name = "recruiter"
	Community  Name = "community"
	Adventurer Name = "adventurer"
)

// Fallback is the persona rendered when a URL names an unknown one.
const Fallback = Recruiter

// All lists the personas in browse-page order.
var All = []Name{Stalker, Investor, Recruiter, Community, Adventurer}

// Parse matches s case-insensitively against the five personas.
func Parse(s string) (Name, bool) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(All, n) {
		return n, true
	}
	return None, false
}

// OrDefault resolves s, falling back to the recruiter persona.
func OrDefault(s string) Name {
	if n, ok := Parse(s); ok {
		return n
	}
	return Fallback
}

var profilePath = regexp.MustCompile(`/profile/([a-zA-Z]+)`)

// FromPath extracts the persona from a /profile/<name> path segment.
// Paths without a recognised persona yield None.
func FromPath(path string) (Name, bool) {
	m := profilePath.FindStringSubmatch(path)
	if m == nil {
		return None, false
	}
	return Parse(m[1])
}

// Theme is the colour set applied to every page for a persona.
type Theme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

// DefaultTheme is used when no persona is active.
var DefaultTheme = Theme{
	Primary:    "#E50914",
	Secondary:  "#141414",
	Accent:     "#FFFFFF",
	Background: "#000000",
}

var themes = map[Name]Theme{
	Stalker: DefaultTheme,
	Investor: {
		Primary:    "#0077B5",
		Secondary:  "#000000",
		Accent:     "#FFFFFF",
		Background: "#0A0A1A",
	},
	Recruiter: {
		Primary:    "#6441A4",
		Secondary:  "#0E0E10",
		Accent:     "#FFFFFF",
		Background: "#0A0A0A",
	},
	Community: {
		Primary:    "#FF9900",
		Secondary:  "#232F3E",
		Accent:     "#FFFFFF",
		Background: "#111111",
	},
	Adventurer: {
		Primary:    "#1DB954",
		Secondary:  "#191414",
		Accent:     "#FFFFFF",
		Background: "#121212",
	},
}

// ThemeFor returns the persona's theme, or DefaultTheme for None and
// unknown names.
func ThemeFor(n Name) Theme {
	if t, ok := themes[n]; ok {
		return t
	}
	return DefaultTheme
}

// Section is a block on the profile dashboard.
type Section string

const (
	SectionJourney     Section = "journey"
	SectionTimeline    Section = "timeline"
	SectionSkills      Section = "skills"
	SectionCaseStudies Section = "case-studies"
	SectionClients     Section = "clients"
)

// View describes how the dashboard is laid out for a persona.
type View struct {
	Title       string
	Description string
	Sections    []Section
	// Highlight selects the skills featured for this persona.
	Highlight func(content.Skill) bool
}

func inCategory(cats ...string) func(content.Skill) bool {
	return func(s content.Skill) bool {
		for _, c := range cats {
			if s.Category == c {
				return true
			}
		}
		return false
	}
}

var views = map[Name]View{
	Stalker: {
		Title:       "Stalker View",
		Description: "Explore my journey through the lens of someone who's been following my work",
		Sections:    []Section{SectionJourney, SectionTimeline, SectionSkills, SectionCaseStudies},
		Highlight:   inCategory("Marketing", "Business"),
	},
	Investor: {
		Title:       "Investor View",
		Description: "Discover investment opportunities and business metrics across my ventures",
		Sections:    []Section{SectionCaseStudies, SectionClients, SectionTimeline, SectionSkills},
		Highlight:   inCategory("Business", "Operations"),
	},
	Recruiter: {
		Title:       "Recruiter View",
		Description: "View my portfolio from a professional recruitment perspective",
		Sections:    []Section{SectionSkills, SectionTimeline, SectionCaseStudies, SectionClients},
		Highlight:   inCategory("Technology", "Operations"),
	},
	Community: {
		Title:       "Community View",
		Description: "Learn about my community building initiatives and networking opportunities",
		Sections:    []Section{SectionJourney, SectionClients, SectionCaseStudies, SectionSkills},
		Highlight: func(s content.Skill) bool {
			return s.Category == "Business" || strings.Contains(s.Name, "Community")
		},
	},
	Adventurer: {
		Title:       "Adventurer View",
		Description: "Join me on my entrepreneurial adventures and see the journey unfold",
		Sections:    []Section{SectionJourney, SectionTimeline, SectionCaseStudies, SectionSkills},
		Highlight:   func(s content.Skill) bool { return s.Proficiency > 85 },
	},
}

// ViewFor returns the dashboard layout for n; unknown names get the
// recruiter layout.
func ViewFor(n Name) View {
	if v, ok := views[n]; ok {
		return v
	}
	return views[Fallback]
}
