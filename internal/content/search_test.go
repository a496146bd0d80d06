package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchShortQuery(t *testing.T) {
	c := MustLoad()
	assert.Empty(t, c.Search(""))
	assert.Empty(t, c.Search("a"))
	assert.Empty(t, c.Search("  s "))
}

func TestSearchMatchesAcrossKinds(t *testing.T) {
	c := MustLoad()

	results := c.Search("GrowthLab")
	require.NotEmpty(t, results)

	kinds := map[ResultKind]bool{}
	for _, r := range results {
		kinds[r.Kind] = true
		assert.NotEmpty(t, r.URL)
	}
	assert.True(t, kinds[KindProject])
	assert.True(t, kinds[KindCaseStudy])
	assert.True(t, kinds[KindExperience])
}

func TestSearchCaseInsensitive(t *testing.T) {
	c := MustLoad()
	upper := c.Search("DIGITAL MARKETING")
	lower := c.Search("digital marketing")
	assert.Equal(t, lower, upper)

	var skill *SearchResult
	for i := range lower {
		if lower[i].Kind == KindSkill {
			skill = &lower[i]
		}
	}
	require.NotNil(t, skill)
	assert.Equal(t, "/skills#digital-marketing", skill.URL)
}

func TestSearchNoMatch(t *testing.T) {
	c := MustLoad()
	assert.Empty(t, c.Search("zzzz-no-such-thing"))
}
