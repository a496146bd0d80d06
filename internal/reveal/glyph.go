package reveal

import (
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"
)

const (
	// Stagger is the delay between consecutive letters popping out.
	Stagger = 60 * time.Millisecond
	// CompletionPause separates the last letter from the emphasis phase.
	CompletionPause = 300 * time.Millisecond
)

// Glyph is one rune of the revealed text.
type Glyph struct {
	Char  string
	Space bool
	// Pos is the index among non-space glyphs; -1 for spaces.
	Pos int
}

// Tokenize splits s into glyphs. Spaces become spacer glyphs that are never
// emphasized.
func Tokenize(s string) []Glyph {
	var out []Glyph
	pos := 0
	for _, r := range s {
		if r == ' ' {
			out = append(out, Glyph{Char: " ", Space: true, Pos: -1})
			continue
		}
		out = append(out, Glyph{Char: string(r), Pos: pos})
		pos++
	}
	return out
}

// Text joins glyphs back into a string.
func Text(glyphs []Glyph) string {
	var b strings.Builder
	for _, g := range glyphs {
		b.WriteString(g.Char)
	}
	return b.String()
}

// LetterCount counts non-space glyphs.
func LetterCount(glyphs []Glyph) int {
	n := 0
	for _, g := range glyphs {
		if !g.Space {
			n++
		}
	}
	return n
}

// Letter is a glyph with its pop-out transform, fanned around the middle
// letter of the name.
type Letter struct {
	Glyph
	Middle   bool
	RotateY  float64 // degrees
	ScaleX   float64
	FontSize float64 // em
	Origin   string
	Delay    time.Duration
}

// Style renders the letter's initial transform as an inline style.
func (l Letter) Style() template.CSS {
	if l.Space {
		return ""
	}
	return template.CSS(fmt.Sprintf(
		"font-size:%.3fem;transform-origin:%s;--rotate-y:%.1fdeg;--scale-x:%.3f;animation-delay:%dms",
		l.FontSize, l.Origin, l.RotateY, l.ScaleX, l.Delay.Milliseconds(),
	))
}

// Layout computes the per-letter transforms for s.
func Layout(s string) []Letter {
	glyphs := Tokenize(s)
	middle := LetterCount(glyphs) / 2

	out := make([]Letter, 0, len(glyphs))
	for _, g := range glyphs {
		if g.Space {
			out = append(out, Letter{Glyph: g})
			continue
		}
		offset := g.Pos - middle
		abs := math.Abs(float64(offset))
		l := Letter{
			Glyph: g,
			Delay: time.Duration(g.Pos) * Stagger,
		}
		switch {
		case offset == 0:
			l.Middle = true
			l.ScaleX = 1
			l.FontSize = 0.85
			l.Origin = "50% 50%"
		default:
			l.RotateY = 89.5
			if offset > 0 {
				l.RotateY = -89.5
			}
			l.ScaleX = math.Max(50, 95.9-abs*10) / 100
			l.FontSize = 0.9 + 0.015*abs*abs
			l.Origin = fmt.Sprintf("%.2f%% 200%%", 50+50/math.Max(1, abs))
		}
		out = append(out, l)
	}
	return out
}
