package avatar

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorByLength(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "E50914"},
		{"A", "0077B5"},
		{"Arul", "1DB954"},
		{"Stalker", "0077B5"},
		{"Recruiter", "FF9900"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Color(tt.name), tt.name)
	}
}

func TestInitials(t *testing.T) {
	uri := Initials("investor", 150)
	require.True(t, strings.HasPrefix(uri, "data:image/svg+xml,"))

	svg, err := url.PathUnescape(strings.TrimPrefix(uri, "data:image/svg+xml,"))
	require.NoError(t, err)
	assert.Contains(t, svg, `fill="#`+Color("investor")+`"`)
	assert.Contains(t, svg, ">I</text>")
	assert.Contains(t, svg, `font-size="75px"`)

	assert.Equal(t, "?", Initial("  "))
	assert.Contains(t, InitialsSVG("<x", 10), "&lt;")
}

func TestPlaceholderURLs(t *testing.T) {
	u, err := url.Parse(PlaceholderURL("", 300, 200))
	require.NoError(t, err)
	assert.Equal(t, "/placeholder.svg", u.Path)
	assert.Equal(t, "Image", u.Query().Get("text"))
	assert.Equal(t, "300", u.Query().Get("width"))

	u, err = url.Parse(ColoredPlaceholderURL("A & B", "", 150, 150))
	require.NoError(t, err)
	assert.Equal(t, "A & B", u.Query().Get("text"))
	assert.Equal(t, DefaultColor, u.Query().Get("color"))
}

func TestPlaceholderSVGDefaults(t *testing.T) {
	svg := PlaceholderSVG(Params{Width: -1, Height: 99999, Color: "javascript:", Text: "<b>"})
	assert.Contains(t, svg, `width="300"`)
	assert.Contains(t, svg, `height="2000"`)
	assert.Contains(t, svg, `fill="#333333"`)
	assert.Contains(t, svg, "&lt;b&gt;")

	svg = PlaceholderSVG(Params{Width: 40, Height: 40, Color: "#0077B5"})
	assert.Contains(t, svg, `fill="#0077B5"`)
	assert.Contains(t, svg, "40×40")
	assert.Contains(t, svg, `font-size="10px"`)
}
