package subtitles

import (
	"fmt"
	"math"
	"strings"

	"clipforge/internal/types"
)

// Resolution is the PlayRes of the rendered ASS script. It should match the
// final output frame so the style margins land where intended.
type Resolution struct {
	Width  int
	Height int
}

// DefaultResolution matches the default vertical output frame.
var DefaultResolution = Resolution{Width: 1080, Height: 1920}

// RenderKaraokeASS renders shifted segments as an ASS script with one
// dialogue line per segment. Every word becomes a `{\k<centiseconds>}`
// reveal of its spoken duration, rounded to hundredths of a second.
// Segments that retain no usable words are skipped: they would render as
// empty dialogue lines.
func RenderKaraokeASS(segs []types.Segment, res Resolution) (string, error) {
	if res.Width <= 0 || res.Height <= 0 {
		res = DefaultResolution
	}

	var b strings.Builder
	b.WriteString(assHeader(res))
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for i, s := range segs {
		if err := checkCue(i, s.Start, s.End); err != nil {
			return "", err
		}

		words := usableWords(s.Words)
		if len(words) == 0 {
			continue
		}

		b.WriteString("Dialogue: 0,")
		b.WriteString(assTime(s.Start))
		b.WriteString(",")
		b.WriteString(assTime(s.End))
		b.WriteString(",Karaoke,,0,0,0,,")
		for j, w := range words {
			cs := int(math.Round((w.End - w.Start) * 100))
			if cs < 1 {
				cs = 1
			}
			if j > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "{\\k%d}%s", cs, sanitizeASS(w.Word))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// HasDialogue reports whether a rendered ASS script contains at least one
// dialogue line. A script without any is not worth burning in.
func HasDialogue(ass string) bool {
	return strings.Contains(ass, "\nDialogue: ")
}

func usableWords(ws []types.Word) []types.Word {
	out := ws[:0:0]
	for _, w := range ws {
		if w.End <= w.Start {
			continue
		}
		if strings.TrimSpace(w.Word) == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

func assHeader(res Resolution) string {
	return fmt.Sprintf(strings.TrimSpace(`
[Script Info]
ScriptType: v4.00+
PlayResX: %d
PlayResY: %d
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Karaoke, Inter, 84, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,2, 80,80,120,1
`), res.Width, res.Height)
}

func assTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	cs := int(math.Round(sec * 100))
	h := cs / 360_000
	cs -= h * 360_000
	m := cs / 6000
	cs -= m * 6000
	s := cs / 100
	cs -= s * 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

// sanitizeASS strips characters that are structurally significant in ASS
// markup so transcript text cannot corrupt the script.
func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return cleanText(s)
}
