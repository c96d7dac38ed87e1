package types

// Transcript is the timed transcription of one source video, produced by an
// external speech-to-text step and treated as read-only input here.
type Transcript struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language,omitempty"`
	Duration float64   `json:"duration,omitempty"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// Highlight is one caller-chosen time range of the source video. Each
// highlight becomes exactly one output clip.
type Highlight struct {
	StartTime   float64 `json:"start_time" yaml:"start_time" validate:"gte=0"`
	EndTime     float64 `json:"end_time" yaml:"end_time" validate:"gtfield=StartTime"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Duration returns the clip length in seconds.
func (h Highlight) Duration() float64 { return h.EndTime - h.StartTime }

// CropPlan is the reframing geometry computed once per source video: the
// crop rectangle on the source frame plus the final scaled dimensions.
type CropPlan struct {
	CropWidth    int
	CropHeight   int
	XOffset      int
	YOffset      int
	OutputWidth  int
	OutputHeight int
}

// RenderedClip describes one successfully transcoded highlight. Index is the
// position in the caller's highlight list.
type RenderedClip struct {
	Index     int
	File      string
	Subtitles string
}

type Manifest struct {
	Input    string            `json:"input"`
	RunID    string            `json:"run_id"`
	Archive  string            `json:"archive,omitempty"`
	Clips    []ManifestClip    `json:"clips"`
	Failures []ManifestFailure `json:"failures,omitempty"`
}

type ManifestClip struct {
	Index     int     `json:"index"`
	StartSec  float64 `json:"start_sec"`
	EndSec    float64 `json:"end_sec"`
	Title     string  `json:"title,omitempty"`
	File      string  `json:"file"`
	Subtitles string  `json:"subtitles,omitempty"`
}

type ManifestFailure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}
