package subtitles

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"clipforge/internal/types"
)

func TestRenderKaraokeASS_KTagsPerWord(t *testing.T) {
	segs := []types.Segment{
		{Start: 0, End: 2, Text: "hello world", Words: []types.Word{
			{Start: 0.0, End: 0.8, Word: "hello"},
			{Start: 0.8, End: 2.0, Word: "world"},
		}},
	}
	ass, err := RenderKaraokeASS(segs, DefaultResolution)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(ass, "{\\k80}hello") {
		t.Fatalf("expected 80cs reveal for hello:\n%s", ass)
	}
	if !strings.Contains(ass, "{\\k120}world") {
		t.Fatalf("expected 120cs reveal for world:\n%s", ass)
	}
	if !strings.Contains(ass, "PlayResX: 1080") || !strings.Contains(ass, "PlayResY: 1920") {
		t.Fatalf("expected vertical PlayRes in header:\n%s", ass)
	}
}

func TestRenderKaraokeASS_SkipsWordlessCues(t *testing.T) {
	segs := []types.Segment{
		{Start: 0, End: 2, Text: "no words here"},
		{Start: 2, End: 4, Text: "with words", Words: []types.Word{{Start: 2, End: 4, Word: "words"}}},
	}
	ass, err := RenderKaraokeASS(segs, DefaultResolution)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.Count(ass, "Dialogue: "); got != 1 {
		t.Fatalf("expected 1 dialogue line, got %d:\n%s", got, ass)
	}
	if !HasDialogue(ass) {
		t.Fatal("HasDialogue should be true")
	}
}

func TestRenderKaraokeASS_NoDialogueWithoutWords(t *testing.T) {
	ass, err := RenderKaraokeASS([]types.Segment{{Start: 0, End: 2, Text: "text only"}}, DefaultResolution)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if HasDialogue(ass) {
		t.Fatalf("expected no dialogue lines:\n%s", ass)
	}
}

// The summed reveal durations of a cue must match the cue duration within
// one hundredth of a second per word.
func TestRenderKaraokeASS_TimingRoundTrip(t *testing.T) {
	words := []types.Word{
		{Start: 0.00, End: 0.33, Word: "one"},
		{Start: 0.33, End: 0.71, Word: "two"},
		{Start: 0.71, End: 1.24, Word: "three"},
		{Start: 1.24, End: 2.00, Word: "four"},
	}
	segs := []types.Segment{{Start: 0, End: 2, Text: "one two three four", Words: words}}

	ass, err := RenderKaraokeASS(segs, DefaultResolution)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	re := regexp.MustCompile(`\{\\k(\d+)\}`)
	var sumCS int
	for _, m := range re.FindAllStringSubmatch(ass, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			t.Fatalf("parse k tag: %v", err)
		}
		sumCS += n
	}

	cueDur := 2.0
	tolerance := float64(len(words)) * 0.01
	if diff := math.Abs(float64(sumCS)/100 - cueDur); diff > tolerance {
		t.Fatalf("reveal sum %.2fs differs from cue duration %.2fs by %.3fs (tolerance %.2fs)", float64(sumCS)/100, cueDur, diff, tolerance)
	}
}

func TestRenderKaraokeASS_SanitizesMarkup(t *testing.T) {
	segs := []types.Segment{
		{Start: 0, End: 1, Words: []types.Word{{Start: 0, End: 1, Word: "{\\pos(0,0)}evil"}}},
	}
	ass, err := RenderKaraokeASS(segs, DefaultResolution)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range strings.Split(ass, "\n") {
		if !strings.HasPrefix(line, "Dialogue: ") {
			continue
		}
		text := line[strings.LastIndex(line, ",,")+2:]
		if strings.Contains(text, "{\\pos") {
			t.Fatalf("raw override tag leaked into dialogue text: %s", line)
		}
	}
}

func TestAssTime_Format(t *testing.T) {
	cases := map[float64]string{
		0:      "0:00:00.00",
		61.23:  "0:01:01.23",
		3601.5: "1:00:01.50",
		-2:     "0:00:00.00",
	}
	for in, want := range cases {
		if got := assTime(in); got != want {
			t.Fatalf("assTime(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderKaraokeASS_MinimumRevealDuration(t *testing.T) {
	segs := []types.Segment{
		{Start: 0, End: 1, Words: []types.Word{{Start: 0.500, End: 0.501, Word: "blip"}}},
	}
	ass, err := RenderKaraokeASS(segs, DefaultResolution)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(ass, fmt.Sprintf("{\\k%d}blip", 1)) {
		t.Fatalf("expected minimum 1cs reveal:\n%s", ass)
	}
}
