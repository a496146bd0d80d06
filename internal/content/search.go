package content

import (
	"strings"
	"unicode/utf8"
)

// ResultKind tags where a search hit came from.
type ResultKind string

const (
	KindProject    ResultKind = "project"
	KindCaseStudy  ResultKind = "case-study"
	KindSkill      ResultKind = "skill"
	KindExperience ResultKind = "experience"
)

// Icon is the glyph the search overlay shows next to a result.
func (k ResultKind) Icon() string {
	switch k {
	case KindProject:
		return "🚀"
	case KindCaseStudy:
		return "📊"
	case KindSkill:
		return "🔧"
	case KindExperience:
		return "💼"
	}
	return "📄"
}

// SearchResult is one hit from Search.
type SearchResult struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Kind        ResultKind `json:"type"`
	Image       string     `json:"image,omitempty"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url"`
}

// MinQueryLen is the shortest query Search answers.
const MinQueryLen = 2

// Search matches q case-insensitively against titles and descriptions of
// projects, case studies, skills and work experience.
func (c *Catalog) Search(q string) []SearchResult {
	q = strings.ToLower(strings.TrimSpace(q))
	if utf8.RuneCountInString(q) < MinQueryLen {
		return nil
	}
	match := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}

	var results []SearchResult
	for _, p := range c.Projects {
		if match(p.Title, p.Description) {
			results = append(results, SearchResult{
				ID: p.ID, Title: p.Title, Kind: KindProject, Image: p.Image,
				Description: p.Description, URL: "/projects/" + p.ID,
			})
		}
	}
	for _, cs := range c.CaseStudies {
		if match(cs.Title, cs.Description) {
			results = append(results, SearchResult{
				ID: cs.ID, Title: cs.Title, Kind: KindCaseStudy, Image: cs.Image,
				Description: cs.Description, URL: "/case-studies/" + cs.ID,
			})
		}
	}
	for _, s := range c.Skills {
		if match(s.Name, s.Description) {
			results = append(results, SearchResult{
				ID: s.Slug(), Title: s.Name, Kind: KindSkill,
				Description: s.Description, URL: "/skills#" + s.Slug(),
			})
		}
	}
	for _, t := range c.TimelineOf(TimelineWork) {
		title := t.Title + " at " + t.Name
		summary := strings.Join(t.Summary, " ")
		if match(title, summary) {
			results = append(results, SearchResult{
				ID: t.Slug(), Title: title, Kind: KindExperience,
				Description: summary, URL: "/work-experience#" + t.Slug(),
			})
		}
	}
	return results
}
