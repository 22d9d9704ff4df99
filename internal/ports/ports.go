package ports

import (
	"context"

	"github.com/clipworks/ecc/internal/types"
)

// TranscriptSource produces the timestamped speech transcript. The real
// producer is an external ASR collaborator; inside this module the artifact
// arrives as JSON.
type TranscriptSource interface {
	Transcript(ctx context.Context) (types.Transcript, error)
}

// SceneSource produces scene-cut boundaries detected by an external
// shot/cut-detection collaborator.
type SceneSource interface {
	Scenes(ctx context.Context) ([]types.Scene, error)
}

// ClipSink consumes the final selected clip set, e.g. a downstream
// narration/render stage.
type ClipSink interface {
	WriteSelected(ctx context.Context, selected []types.ScoredCandidate) error
}
