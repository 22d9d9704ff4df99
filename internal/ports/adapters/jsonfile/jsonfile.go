package jsonfile

import (
	"context"

	"github.com/clipworks/ecc/internal/artifacts"
	"github.com/clipworks/ecc/internal/types"
)

// TranscriptFile reads a transcript artifact from disk.
type TranscriptFile struct {
	path string
}

func NewTranscriptFile(path string) *TranscriptFile {
	return &TranscriptFile{path: path}
}

func (f *TranscriptFile) Transcript(_ context.Context) (types.Transcript, error) {
	return artifacts.LoadTranscript(f.path)
}

// SceneFile reads a scenes artifact from disk.
type SceneFile struct {
	path string
}

func NewSceneFile(path string) *SceneFile {
	return &SceneFile{path: path}
}

func (f *SceneFile) Scenes(_ context.Context) ([]types.Scene, error) {
	return artifacts.LoadScenes(f.path)
}

// SelectedWriter hands the final selection to downstream collaborators as a
// JSON artifact on disk.
type SelectedWriter struct {
	path string
}

func NewSelectedWriter(path string) *SelectedWriter {
	return &SelectedWriter{path: path}
}

func (w *SelectedWriter) WriteSelected(_ context.Context, selected []types.ScoredCandidate) error {
	return artifacts.WriteSelected(w.path, selected)
}
