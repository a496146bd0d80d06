// Package avatar renders the fallback graphics shown when a portrait or
// project image is missing.
package avatar

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Palette holds the background colours for initials avatars.
var Palette = []string{"E50914", "0077B5", "6441A4", "FF9900", "1DB954", "5865F2"}

const (
	DefaultColor = "E50914"
	maxDimension = 2000
)

// Color picks a palette entry from the length of name.
func Color(name string) string {
	return Palette[utf8.RuneCountInString(name)%len(Palette)]
}

// Initial is the upper-cased first letter of name, or "?" when empty.
func Initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// InitialsSVG draws a size×size square with the name's initial.
func InitialsSVG(name string, size int) string {
	size = clamp(size, 150)
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%[1]d" height="%[1]d" viewBox="0 0 %[1]d %[1]d">`+
			`<rect width="%[1]d" height="%[1]d" fill="#%[2]s"/>`+
			`<text x="50%%" y="50%%" font-family="Arial" font-size="%[3]dpx" fill="white" text-anchor="middle" dominant-baseline="middle">%[4]s</text></svg>`,
		size, Color(name), size/2, html.EscapeString(Initial(name)),
	)
}

// Initials returns InitialsSVG as a data URI usable in an img src.
func Initials(name string, size int) string {
	return "data:image/svg+xml," + url.PathEscape(InitialsSVG(name, size))
}

// PlaceholderURL points at the /placeholder.svg route.
func PlaceholderURL(text string, width, height int) string {
	if text == "" {
		text = "Image"
	}
	q := url.Values{}
	q.Set("height", strconv.Itoa(height))
	q.Set("width", strconv.Itoa(width))
	q.Set("text", text)
	return "/placeholder.svg?" + q.Encode()
}

// ColoredPlaceholderURL is PlaceholderURL with a background colour.
func ColoredPlaceholderURL(text, color string, width, height int) string {
	if text == "" {
		text = "Profile"
	}
	if color == "" {
		color = DefaultColor
	}
	q := url.Values{}
	q.Set("height", strconv.Itoa(height))
	q.Set("width", strconv.Itoa(width))
	q.Set("text", text)
	q.Set("color", color)
	return "/placeholder.svg?" + q.Encode()
}

// Params describes a placeholder image.
type Params struct {
	Width  int    `form:"width"`
	Height int    `form:"height"`
	Text   string `form:"text"`
	Color  string `form:"color"`
}

var hexColor = regexp.MustCompile(`^[0-9a-fA-F]{3}([0-9a-fA-F]{3})?$`)

// PlaceholderSVG draws a placeholder. Bad dimensions or colours fall back to
// defaults rather than failing.
func PlaceholderSVG(p Params) string {
	w := clamp(p.Width, 300)
	h := clamp(p.Height, 200)
	fill := "333333"
	if c := strings.TrimPrefix(p.Color, "#"); hexColor.MatchString(c) {
		fill = c
	}
	text := p.Text
	if text == "" {
		text = fmt.Sprintf("%d×%d", w, h)
	}
	fontSize := min(w, h) / 8
	if fontSize < 10 {
		fontSize = 10
	}
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%[1]d" height="%[2]d" viewBox="0 0 %[1]d %[2]d">`+
			`<rect width="%[1]d" height="%[2]d" fill="#%[3]s"/>`+
			`<text x="50%%" y="50%%" font-family="Arial, sans-serif" font-size="%[4]dpx" fill="#E5E5E5" text-anchor="middle" dominant-baseline="middle">%[5]s</text></svg>`,
		w, h, fill, fontSize, html.EscapeString(text),
	)
}

func clamp(v, def int) int {
	if v <= 0 {
		return def
	}
	if v > maxDimension {
		return maxDimension
	}
	return v
}
