// Package subtitles renders clip-local transcript segments into subtitle
// markup: plain SubRip cues or ASS dialogue lines with per-word karaoke
// reveal timing.
package subtitles

import (
	"fmt"
	"strings"

	"clipforge/internal/errs"
)

// Style selects the subtitle markup variant for a run.
type Style string

const (
	// StylePlain emits one SRT cue per segment with the full segment text.
	StylePlain Style = "plain"
	// StyleKaraoke emits ASS dialogue lines that reveal words in sync with
	// their spoken timing.
	StyleKaraoke Style = "karaoke"
)

// ParseStyle validates a user-supplied style name.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StylePlain:
		return StylePlain, nil
	case StyleKaraoke:
		return StyleKaraoke, nil
	default:
		return "", errs.Inputf("parse subtitle style", "unknown style %q (want %q or %q)", s, StylePlain, StyleKaraoke)
	}
}

// Ext returns the file extension for markup rendered in this style.
func (s Style) Ext() string {
	if s == StyleKaraoke {
		return ".ass"
	}
	return ".srt"
}

// cleanText collapses all runs of whitespace, embedded newlines included,
// into single spaces. Newlines inside cue text would break both formats.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// checkCue rejects cues the selector should never have let through. This is
// a programmer error rather than bad user input: selection clamps every
// segment before it reaches a renderer.
func checkCue(i int, start, end float64) error {
	if end <= start {
		return fmt.Errorf("cue %d has non-positive duration (start=%.3f end=%.3f)", i, start, end)
	}
	return nil
}
