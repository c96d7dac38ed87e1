package subtitles

import (
	"fmt"
	"math"
	"strings"

	"clipforge/internal/types"
)

// RenderSRT renders shifted segments as a SubRip track: sequence number,
// `HH:MM:SS,mmm --> HH:MM:SS,mmm`, cue text, blank line. One cue per
// segment, no word-level timing.
func RenderSRT(segs []types.Segment) (string, error) {
	var b strings.Builder
	for i, s := range segs {
		if err := checkCue(i, s.Start, s.End); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", srtTime(s.Start), srtTime(s.End))
		b.WriteString(cleanText(s.Text))
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

func srtTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	ms := int(math.Round(sec * 1000))
	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
