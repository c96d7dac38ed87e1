// Package segments maps a full-video transcription onto a single highlight's
// local time axis.
package segments

import (
	"clipforge/internal/errs"
	"clipforge/internal/types"
)

// Select returns the transcript segments relevant to the highlight, shifted
// so that time zero is the highlight start.
//
// Inclusion uses the overlap policy: a segment is retained when its time
// range intersects the highlight range at all, and boundary-straddling
// segments are clamped to the clip window instead of dropped. Strict
// containment would silently lose cues that cross a highlight edge, which is
// never what a viewer of the burned subtitles wants.
//
// Word spans are shifted and clamped the same way; words left with zero or
// negative duration are dropped. Input order is preserved.
func Select(tr types.Transcript, h types.Highlight) ([]types.Segment, error) {
	const op = "select segments"

	if h.EndTime <= h.StartTime {
		return nil, errs.Inputf(op, "highlight end %.3f must be after start %.3f", h.EndTime, h.StartTime)
	}
	clipDur := h.EndTime - h.StartTime

	var out []types.Segment
	for i, s := range tr.Segments {
		if s.End <= s.Start {
			return nil, errs.Inputf(op, "transcript segment %d has non-positive duration (start=%.3f end=%.3f)", i, s.Start, s.End)
		}
		if s.End <= h.StartTime || s.Start >= h.EndTime {
			continue
		}

		shifted := types.Segment{
			Start: clamp(s.Start-h.StartTime, clipDur),
			End:   clamp(s.End-h.StartTime, clipDur),
			Text:  s.Text,
		}
		for _, w := range s.Words {
			ws := clamp(w.Start-h.StartTime, clipDur)
			we := clamp(w.End-h.StartTime, clipDur)
			if we <= ws {
				continue
			}
			shifted.Words = append(shifted.Words, types.Word{Start: ws, End: we, Word: w.Word})
		}
		out = append(out, shifted)
	}
	return out, nil
}

func clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
