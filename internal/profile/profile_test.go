package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velantec/streamfolio/internal/content"
)

func TestEveryPersonaHasOneTheme(t *testing.T) {
	for _, n := range All {
		th, ok := themes[n]
		require.True(t, ok, n)
		assert.NotEmpty(t, th.Primary, n)
		assert.NotEmpty(t, th.Secondary, n)
		assert.Equal(t, th, ThemeFor(n))
	}
	assert.Len(t, themes, len(All))
}

func TestThemeForNone(t *testing.T) {
	assert.Equal(t, DefaultTheme, ThemeFor(None))
	assert.Equal(t, DefaultTheme, ThemeFor(Name("ghost")))
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		path   string
		want   Name
		wantOK bool
	}{
		{"/profile/investor", Investor, true},
		{"/profile/Community", Community, true},
		{"/profile/ADVENTURER/extra", Adventurer, true},
		{"/profile/unknown", None, false},
		{"/profile/", None, false},
		{"/projects/velantec", None, false},
		{"/", None, false},
	}
	for _, tt := range tests {
		got, ok := FromPath(tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("FromPath(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, Stalker, OrDefault("stalker"))
	assert.Equal(t, Recruiter, OrDefault("unknown"))
	assert.Equal(t, Recruiter, OrDefault(""))
}

func TestViewsHighlightSkills(t *testing.T) {
	c := content.MustLoad()
	for _, n := range All {
		v := ViewFor(n)
		assert.NotEmpty(t, v.Title, n)
		assert.Len(t, v.Sections, 4, n)
		highlighted := c.FilterSkills(v.Highlight)
		assert.NotEmpty(t, highlighted, n)
	}
	assert.Equal(t, "Recruiter View", ViewFor("nobody").Title)
}

func TestAllMatchesCatalogNames(t *testing.T) {
	names := make([]string, 0, len(All))
	for _, n := range All {
		names = append(names, string(n))
		got, ok := Parse(string(n))
		assert.True(t, ok)
		assert.Equal(t, n, got)
	}
	assert.Equal(t, content.ProfileNames, names)
}
