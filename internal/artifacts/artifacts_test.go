package artifacts

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/clipworks/ecc/internal/errs"
	"github.com/clipworks/ecc/internal/types"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadTranscript_OK(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "transcript.json", `{
		"segments": [
			{"start_ms": 0, "end_ms": 1000, "text": "Hello there."},
			{"start_ms": 1100, "end_ms": 4000, "text": "More speech."}
		]
	}`)
	tr, err := LoadTranscript(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tr.Segments) != 2 || tr.Segments[0].Text != "Hello there." {
		t.Fatalf("unexpected transcript: %+v", tr)
	}
}

func TestLoadTranscript_ErrorKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
			wantErr: errs.ErrArtifactNotFound,
		},
		{
			name:    "invalid json",
			path:    func(t *testing.T) string { return writeTemp(t, "t.json", `{"segments": [`) },
			wantErr: errs.ErrArtifactMalformed,
		},
		{
			name:    "not an object",
			path:    func(t *testing.T) string { return writeTemp(t, "t.json", `[1, 2]`) },
			wantErr: errs.ErrValidation,
		},
		{
			name:    "missing segments",
			path:    func(t *testing.T) string { return writeTemp(t, "t.json", `{"other": true}`) },
			wantErr: errs.ErrValidation,
		},
		{
			name: "segment missing end_ms",
			path: func(t *testing.T) string {
				return writeTemp(t, "t.json", `{"segments": [{"start_ms": 0, "text": "x"}]}`)
			},
			wantErr: errs.ErrValidation,
		},
		{
			name: "segment inverted interval",
			path: func(t *testing.T) string {
				return writeTemp(t, "t.json", `{"segments": [{"start_ms": 500, "end_ms": 100, "text": "x"}]}`)
			},
			wantErr: errs.ErrValidation,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadTranscript(tc.path(t))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadScenes_OK(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "scenes.json", `[
		{"scene_id": 0, "start_ms": 0, "end_ms": 5000},
		{"scene_id": 1, "start_ms": 5000, "end_ms": 9000}
	]`)
	scenes, err := LoadScenes(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []types.Scene{
		{SceneID: 0, StartMS: 0, EndMS: 5000},
		{SceneID: 1, StartMS: 5000, EndMS: 9000},
	}
	if !reflect.DeepEqual(scenes, want) {
		t.Fatalf("got %+v, want %+v", scenes, want)
	}
}

func TestDecodeScenes_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"not a list", `{"scene_id": 0}`, errs.ErrValidation},
		{"invalid json", `[{`, errs.ErrArtifactMalformed},
		{"missing scene_id", `[{"start_ms": 0, "end_ms": 100}]`, errs.ErrValidation},
		{"missing end_ms", `[{"scene_id": 0, "start_ms": 0}]`, errs.ErrValidation},
		{"negative id", `[{"scene_id": -1, "start_ms": 0, "end_ms": 100}]`, errs.ErrValidation},
		{
			"duplicate id",
			`[{"scene_id": 0, "start_ms": 0, "end_ms": 100}, {"scene_id": 0, "start_ms": 100, "end_ms": 200}]`,
			errs.ErrValidation,
		},
		{"inverted interval", `[{"scene_id": 0, "start_ms": 200, "end_ms": 100}]`, errs.ErrValidation},
		{
			"overlapping scenes",
			`[{"scene_id": 0, "start_ms": 0, "end_ms": 300}, {"scene_id": 1, "start_ms": 200, "end_ms": 400}]`,
			errs.ErrValidation,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			scenes, err := DecodeScenes([]byte(tc.raw))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if scenes != nil {
				t.Fatalf("expected no partial scenes, got %+v", scenes)
			}
		})
	}
}

func TestWriteAndLoadCandidates_Roundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", CandidatesFile)
	in := []types.CandidateSegment{
		{
			CandidateID:  "scene-0-0",
			SceneID:      0,
			StartMS:      0,
			EndMS:        4000,
			Text:         "Hello there.",
			DurationMS:   4000,
			WordCount:    2,
			SegmentCount: 1,
		},
	}
	if err := WriteCandidates(path, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadCandidates(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", got, in)
	}
}

func TestWriteSelected_EmptyListStaysAList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), SelectedFile)
	if err := WriteSelected(path, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(raw) != "[]\n" {
		t.Fatalf("expected empty JSON list, got %q", raw)
	}
}
