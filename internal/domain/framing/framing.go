// Package framing computes how to reframe a source video into a different
// aspect ratio: one crop rectangle plus the final scale dimensions.
package framing

import (
	"math"
	"strconv"
	"strings"

	"clipforge/internal/errs"
	"clipforge/internal/types"
)

// Anchor decides which part of the frame survives a vertical crop. Typical
// source footage concentrates subjects in the upper region, so top is the
// default, but it is a tunable policy rather than a geometric rule.
type Anchor string

const (
	AnchorTop    Anchor = "top"
	AnchorCenter Anchor = "center"
	AnchorBottom Anchor = "bottom"
)

// ParseAnchor validates a user-supplied anchor name.
func ParseAnchor(s string) (Anchor, error) {
	switch Anchor(strings.ToLower(strings.TrimSpace(s))) {
	case AnchorTop:
		return AnchorTop, nil
	case AnchorCenter:
		return AnchorCenter, nil
	case AnchorBottom:
		return AnchorBottom, nil
	default:
		return "", errs.Inputf("parse crop anchor", "unknown anchor %q (want top, center or bottom)", s)
	}
}

// Ratio is a target aspect ratio expressed as width:height.
type Ratio struct {
	W int
	H int
}

// ParseRatio parses "W:H" notation, e.g. "9:16".
func ParseRatio(s string) (Ratio, error) {
	const op = "parse aspect ratio"
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return Ratio{}, errs.Inputf(op, "aspect %q must be in W:H form", s)
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return Ratio{}, errs.Inputf(op, "aspect %q must be two positive integers", s)
	}
	return Ratio{W: w, H: h}, nil
}

// Value returns the ratio as width/height.
func (r Ratio) Value() float64 { return float64(r.W) / float64(r.H) }

// Options tune the crop plan. DefaultOptions covers the vertical short-form
// case: 9:16 scaled to 1080x1920, anchored to the top of the frame.
type Options struct {
	Aspect       Ratio
	OutputWidth  int
	OutputHeight int
	Anchor       Anchor
}

func DefaultOptions() Options {
	return Options{
		Aspect:       Ratio{W: 9, H: 16},
		OutputWidth:  1080,
		OutputHeight: 1920,
		Anchor:       AnchorTop,
	}
}

// Plan computes the crop rectangle that matches the target aspect ratio and
// stays inside the source frame.
//
// A source relatively wider than the target is cropped symmetrically on the
// left and right. A source relatively taller (or matching) keeps its full
// width and is cropped vertically according to the anchor. Rounding is
// half-away-from-zero: 1920x1080 at 9:16 yields a 608x1080 crop at x=656.
func Plan(srcW, srcH int, opts Options) (types.CropPlan, error) {
	const op = "plan crop"

	if srcW <= 0 || srcH <= 0 {
		return types.CropPlan{}, errs.Inputf(op, "source dimensions %dx%d must be positive", srcW, srcH)
	}
	if opts.Aspect.W <= 0 || opts.Aspect.H <= 0 {
		return types.CropPlan{}, errs.Inputf(op, "target aspect %d:%d must be positive", opts.Aspect.W, opts.Aspect.H)
	}
	if opts.OutputWidth <= 0 || opts.OutputHeight <= 0 {
		return types.CropPlan{}, errs.Inputf(op, "output dimensions %dx%d must be positive", opts.OutputWidth, opts.OutputHeight)
	}

	target := opts.Aspect.Value()
	current := float64(srcW) / float64(srcH)

	plan := types.CropPlan{
		OutputWidth:  opts.OutputWidth,
		OutputHeight: opts.OutputHeight,
	}

	if current > target {
		plan.CropHeight = srcH
		plan.CropWidth = int(math.Round(float64(srcH) * target))
		if plan.CropWidth < 1 {
			plan.CropWidth = 1
		}
		plan.XOffset = (srcW - plan.CropWidth) / 2
		return plan, nil
	}

	plan.CropWidth = srcW
	plan.CropHeight = int(math.Round(float64(srcW) / target))
	if plan.CropHeight < 1 {
		plan.CropHeight = 1
	}
	switch opts.Anchor {
	case AnchorCenter:
		plan.YOffset = (srcH - plan.CropHeight) / 2
	case AnchorBottom:
		plan.YOffset = srcH - plan.CropHeight
	default:
		plan.YOffset = 0
	}
	return plan, nil
}
