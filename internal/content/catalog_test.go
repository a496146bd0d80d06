package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Len(t, c.Profiles, 5)
	assert.NotEmpty(t, c.Projects)
	assert.NotEmpty(t, c.CaseStudies)
	assert.NotEmpty(t, c.Skills)
	assert.NotEmpty(t, c.Timeline)
	assert.NotEmpty(t, c.Testimonials)

	for _, s := range c.Skills {
		assert.GreaterOrEqual(t, s.Proficiency, 0, s.Name)
		assert.LessOrEqual(t, s.Proficiency, 100, s.Name)
	}
	// Every journey highlight must point at a real timeline entry.
	for _, h := range c.Highlights {
		typ, ok := c.TimelineTypeOf(h.TimelineID)
		require.True(t, ok, "highlight %s -> %s", h.ID, h.TimelineID)
		assert.Equal(t, h.Type, typ)
	}
}

func TestParseRejectsInvalidCatalog(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"duplicate project", `
projects:
  - {id: a, title: A}
  - {id: a, title: B}
`},
		{"empty case study id", `
case_studies:
  - {title: nameless}
`},
		{"proficiency above range", `
skills:
  - {name: Go, category: Technology, proficiency: 101}
`},
		{"proficiency below range", `
skills:
  - {name: Go, category: Technology, proficiency: -1}
`},
		{"unknown profile name", `
profiles:
  - {name: villain}
`},
		{"unknown timeline type", `
timeline:
  - {name: Somewhere, title: Job, type: hobby}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLookups(t *testing.T) {
	c := MustLoad()

	p, ok := c.ProjectByID("velantec")
	require.True(t, ok)
	assert.Equal(t, "VELANTEC", p.Title)
	assert.Equal(t, []string{"AI", "Cybersecurity", "Software Development", "Business Strategy"}, p.Tech())

	_, ok = c.ProjectByID("does-not-exist")
	assert.False(t, ok)

	cs, ok := c.CaseStudyByID("growthlab-community")
	require.True(t, ok)
	assert.Len(t, cs.Metrics, 4)

	_, ok = c.CaseStudyByID("nope")
	assert.False(t, ok)
}

func TestSkillFilterPartitionsCatalog(t *testing.T) {
	c := MustLoad()

	var union []Skill
	for _, cat := range c.SkillCategories() {
		got := c.SkillsByCategory(cat)
		require.NotEmpty(t, got, cat)
		for _, s := range got {
			assert.Equal(t, cat, s.Category)
		}
		union = append(union, got...)
	}
	assert.ElementsMatch(t, c.Skills, union)
	assert.Equal(t, c.Skills, c.SkillsByCategory(""))
	assert.Empty(t, c.SkillsByCategory("Underwater Basket Weaving"))
}

func TestCaseStudyFilterPartitionsCatalog(t *testing.T) {
	c := MustLoad()

	var union []CaseStudy
	for _, ind := range c.Industries() {
		got := c.CaseStudiesByIndustry(ind)
		for _, cs := range got {
			assert.Equal(t, ind, cs.Industry)
		}
		union = append(union, got...)
	}
	assert.ElementsMatch(t, c.CaseStudies, union)
	assert.Equal(t, c.CaseStudies, c.CaseStudiesByIndustry(""))
}

func TestTimelineSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"VELANTEC", "velantec"},
		{"Murdoch University", "murdoch-university"},
		{"Aval.sg/Avan.sg", "aval.sg/avan.sg"},
		{"  Spaced   Out  ", "spaced-out"},
	}
	for _, tt := range tests {
		got := TimelineItem{Name: tt.name}.Slug()
		if got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestImagesAreDistinct(t *testing.T) {
	c := MustLoad()
	imgs := c.Images()
	seen := map[string]bool{}
	for _, img := range imgs {
		assert.False(t, seen[img], "duplicate %s", img)
		seen[img] = true
	}
	assert.Contains(t, imgs, "/images/profiles/recruiter.png")
}
