// Package content holds the site's static records: projects, case studies,
// skills, the timeline, testimonials and the five viewer profiles.
//
// The tables are authored in catalog.yaml, embedded into the binary and
// parsed once at startup. A Catalog is never mutated after Load returns, so
// it is safe to share between request goroutines without locking.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ErrInvalid is wrapped by every catalog validation failure.
var ErrInvalid = errors.New("invalid catalog")

// Catalog is the read-only set of content tables.
type Catalog struct {
	Profiles     []Profile          `yaml:"profiles"`
	Projects     []Project          `yaml:"projects"`
	CaseStudies  []CaseStudy        `yaml:"case_studies"`
	Skills       []Skill            `yaml:"skills"`
	Timeline     []TimelineItem     `yaml:"timeline"`
	Testimonials []Testimonial      `yaml:"testimonials"`
	Highlights   []JourneyHighlight `yaml:"highlights"`
	Clients      []ClientLogo       `yaml:"clients"`
	Ventures     []Venture          `yaml:"ventures"`

	projectIdx   map[string]int
	caseStudyIdx map[string]int
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// MustLoad is Load for package-level initialisation in tests and tools.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.projectIdx = make(map[string]int, len(c.Projects))
	for i, p := range c.Projects {
		c.projectIdx[p.ID] = i
	}
	c.caseStudyIdx = make(map[string]int, len(c.CaseStudies))
	for i, cs := range c.CaseStudies {
		c.caseStudyIdx[cs.ID] = i
	}
	return &c, nil
}

// ProfileNames are the persona names a profile record may use. The profile
// package defines the same five as typed constants.
var ProfileNames = []string{"stalker", "investor", "recruiter", "community", "adventurer"}

func (c *Catalog) validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	unique := func(collection string, ids []string) {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if id == "" {
				invalid("%s: empty id", collection)
				continue
			}
			if seen[id] {
				invalid("%s: duplicate id %q", collection, id)
			}
			seen[id] = true
		}
	}

	ids := make([]string, 0, len(c.Projects))
	for _, p := range c.Projects {
		ids = append(ids, p.ID)
	}
	unique("projects", ids)

	ids = ids[:0]
	for _, cs := range c.CaseStudies {
		ids = append(ids, cs.ID)
	}
	unique("case_studies", ids)

	ids = ids[:0]
	for _, s := range c.Skills {
		ids = append(ids, s.Name)
		if s.Proficiency < 0 || s.Proficiency > 100 {
			invalid("skills: %q proficiency %d outside [0,100]", s.Name, s.Proficiency)
		}
	}
	unique("skills", ids)

	ids = ids[:0]
	for _, t := range c.Timeline {
		ids = append(ids, t.Slug())
		if !t.Type.Valid() {
			invalid("timeline: %q has unknown type %q", t.Name, t.Type)
		}
	}
	unique("timeline", ids)

	ids = ids[:0]
	for _, h := range c.Highlights {
		ids = append(ids, h.ID)
	}
	unique("highlights", ids)

	ids = ids[:0]
	for _, cl := range c.Clients {
		ids = append(ids, cl.ID)
	}
	unique("clients", ids)

	ids = ids[:0]
	for _, p := range c.Profiles {
		if p.Name != "" && !slices.Contains(ProfileNames, p.Name) {
			invalid("profiles: unknown persona %q", p.Name)
		}
		ids = append(ids, p.Name)
	}
	unique("profiles", ids)

	return errors.Join(errs...)
}

// ProjectByID looks up a project.
func (c *Catalog) ProjectByID(id string) (Project, bool) {
	i, ok := c.projectIdx[id]
	if !ok {
		return Project{}, false
	}
	return c.Projects[i], true
}

// CaseStudyByID looks up a case study.
func (c *Catalog) CaseStudyByID(id string) (CaseStudy, bool) {
	i, ok := c.caseStudyIdx[id]
	if !ok {
		return CaseStudy{}, false
	}
	return c.CaseStudies[i], true
}

// ProfileByName looks up a persona record.
func (c *Catalog) ProfileByName(name string) (Profile, bool) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// SkillCategories lists skill categories in first-seen order.
func (c *Catalog) SkillCategories() []string {
	return distinct(c.Skills, func(s Skill) string { return s.Category })
}

// SkillsByCategory returns the skills in category, or all skills when
// category is empty.
func (c *Catalog) SkillsByCategory(category string) []Skill {
	if category == "" {
		return c.Skills
	}
	return filter(c.Skills, func(s Skill) bool { return s.Category == category })
}

// FilterSkills returns the skills matching keep.
func (c *Catalog) FilterSkills(keep func(Skill) bool) []Skill {
	return filter(c.Skills, keep)
}

// TopSkills returns the first n skills.
func (c *Catalog) TopSkills(n int) []Skill {
	if n > len(c.Skills) {
		n = len(c.Skills)
	}
	return c.Skills[:n]
}

// Industries lists case-study industries in first-seen order.
func (c *Catalog) Industries() []string {
	return distinct(c.CaseStudies, func(cs CaseStudy) string { return cs.Industry })
}

// CaseStudiesByIndustry returns the case studies in industry, or all of
// them when industry is empty.
func (c *Catalog) CaseStudiesByIndustry(industry string) []CaseStudy {
	if industry == "" {
		return c.CaseStudies
	}
	return filter(c.CaseStudies, func(cs CaseStudy) bool { return cs.Industry == industry })
}

// TimelineOf returns the timeline entries of type t, or all of them when t
// is empty.
func (c *Catalog) TimelineOf(t TimelineType) []TimelineItem {
	if t == "" {
		return c.Timeline
	}
	return filter(c.Timeline, func(it TimelineItem) bool { return it.Type == t })
}

// TimelineTypeOf reports which timeline a slug belongs to.
func (c *Catalog) TimelineTypeOf(slug string) (TimelineType, bool) {
	for _, t := range c.Timeline {
		if t.Slug() == slug {
			return t.Type, true
		}
	}
	return "", false
}

// Images returns every image path referenced by the catalog, in table
// order, without duplicates.
func (c *Catalog) Images() []string {
	var all []string
	for _, p := range c.Profiles {
		all = append(all, p.Image, p.Background)
	}
	for _, p := range c.Projects {
		all = append(all, p.Image)
	}
	for _, cs := range c.CaseStudies {
		all = append(all, cs.Image)
	}
	for _, t := range c.Testimonials {
		all = append(all, t.Image)
	}
	for _, h := range c.Highlights {
		all = append(all, h.Image)
	}
	for _, cl := range c.Clients {
		all = append(all, cl.Image)
	}
	for _, v := range c.Ventures {
		all = append(all, v.Logo)
	}
	return distinct(all, func(s string) string { return s })
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func distinct[T any](in []T, key func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range in {
		k := key(v)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
