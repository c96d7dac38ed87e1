package ports

import (
	"context"

	"clipforge/internal/domain/compose"
)

// Transcoder executes a composed transcoding job. Implementations surface
// the engine's diagnostic output in returned errors.
type Transcoder interface {
	Transcode(ctx context.Context, job compose.Job) error
}

// Prober inspects source video metadata.
type Prober interface {
	ProbeVideoSize(ctx context.Context, path string) (width, height int, err error)
	ProbeDuration(ctx context.Context, path string) (float64, error)
}
