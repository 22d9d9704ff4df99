package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/clipworks/ecc/internal/errs"
	"github.com/clipworks/ecc/internal/types"
)

// Artifact file names produced by a pipeline run.
const (
	CandidatesFile = "candidates.json"
	ScoredFile     = "scored.json"
	SelectedFile   = "selected.json"
)

// LoadTranscript reads and validates a transcript artifact. A missing file,
// unparsable JSON, and a structurally invalid payload surface as distinct
// error kinds.
func LoadTranscript(path string) (types.Transcript, error) {
	raw, err := readArtifact(path, "load transcript")
	if err != nil {
		return types.Transcript{}, err
	}
	return DecodeTranscript(raw)
}

// DecodeTranscript validates raw transcript JSON and decodes it.
func DecodeTranscript(raw []byte) (types.Transcript, error) {
	const op = "decode transcript"
	if !gjson.ValidBytes(raw) {
		return types.Transcript{}, errs.Wrap(errs.ErrArtifactMalformed, "artifacts", op, "invalid JSON", nil)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return types.Transcript{}, errs.Wrap(errs.ErrValidation, "artifacts", op, "transcript payload must be an object", nil)
	}
	segments := root.Get("segments")
	if !segments.Exists() || !segments.IsArray() {
		return types.Transcript{}, errs.Wrap(errs.ErrValidation, "artifacts", op, "transcript must carry a segments list", nil)
	}

	var invalid error
	segments.ForEach(func(idx, seg gjson.Result) bool {
		for _, key := range []string{"start_ms", "end_ms", "text"} {
			if !seg.Get(key).Exists() {
				invalid = errs.Wrap(errs.ErrValidation, "artifacts", op,
					fmt.Sprintf("segment %d missing %s", idx.Int(), key), nil)
				return false
			}
		}
		startMS := seg.Get("start_ms").Int()
		endMS := seg.Get("end_ms").Int()
		if startMS < 0 || endMS <= startMS {
			invalid = errs.Wrap(errs.ErrValidation, "artifacts", op,
				fmt.Sprintf("segment %d has invalid interval [%d, %d)", idx.Int(), startMS, endMS), nil)
			return false
		}
		return true
	})
	if invalid != nil {
		return types.Transcript{}, invalid
	}

	var tr types.Transcript
	if err := json.Unmarshal(raw, &tr); err != nil {
		return types.Transcript{}, errs.Wrap(errs.ErrArtifactMalformed, "artifacts", op, "", err)
	}
	return tr, nil
}

// LoadScenes reads and validates a scenes artifact.
func LoadScenes(path string) ([]types.Scene, error) {
	raw, err := readArtifact(path, "load scenes")
	if err != nil {
		return nil, err
	}
	return DecodeScenes(raw)
}

// DecodeScenes validates raw scene JSON and decodes it. The payload must be a
// list; every entry must carry scene_id, start_ms and end_ms; ids must be
// unique and non-negative; intervals must be valid, sorted and
// non-overlapping.
func DecodeScenes(raw []byte) ([]types.Scene, error) {
	const op = "decode scenes"
	if !gjson.ValidBytes(raw) {
		return nil, errs.Wrap(errs.ErrArtifactMalformed, "artifacts", op, "invalid JSON", nil)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return nil, errs.Wrap(errs.ErrValidation, "artifacts", op, "scenes payload must be a list", nil)
	}

	var invalid error
	seen := make(map[int64]bool)
	prevEndMS := int64(-1)
	root.ForEach(func(idx, scene gjson.Result) bool {
		for _, key := range []string{"scene_id", "start_ms", "end_ms"} {
			if !scene.Get(key).Exists() {
				invalid = errs.Wrap(errs.ErrValidation, "artifacts", op,
					fmt.Sprintf("scene entry %d must include scene_id, start_ms, end_ms", idx.Int()), nil)
				return false
			}
		}
		sceneID := scene.Get("scene_id").Int()
		startMS := scene.Get("start_ms").Int()
		endMS := scene.Get("end_ms").Int()
		switch {
		case sceneID < 0:
			invalid = errs.Wrap(errs.ErrValidation, "artifacts", op,
				fmt.Sprintf("scene entry %d has negative scene_id", idx.Int()), nil)
		case seen[sceneID]:
			invalid = errs.Wrap(errs.ErrValidation, "artifacts", op,
				fmt.Sprintf("duplicate scene_id %d", sceneID), nil)
		case startMS < 0 || endMS <= startMS:
			invalid = errs.Wrap(errs.ErrValidation, "artifacts", op,
				fmt.Sprintf("scene %d has invalid interval [%d, %d)", sceneID, startMS, endMS), nil)
		case startMS < prevEndMS:
			invalid = errs.Wrap(errs.ErrValidation, "artifacts", op,
				fmt.Sprintf("scene %d overlaps or precedes the previous scene", sceneID), nil)
		}
		if invalid != nil {
			return false
		}
		seen[sceneID] = true
		prevEndMS = endMS
		return true
	})
	if invalid != nil {
		return nil, invalid
	}

	var scenes []types.Scene
	if err := json.Unmarshal(raw, &scenes); err != nil {
		return nil, errs.Wrap(errs.ErrArtifactMalformed, "artifacts", op, "", err)
	}
	return scenes, nil
}

// LoadCandidates reads a candidates artifact written by a previous run.
func LoadCandidates(path string) ([]types.CandidateSegment, error) {
	raw, err := readArtifact(path, "load candidates")
	if err != nil {
		return nil, err
	}
	const op = "decode candidates"
	if !gjson.ValidBytes(raw) {
		return nil, errs.Wrap(errs.ErrArtifactMalformed, "artifacts", op, "invalid JSON", nil)
	}
	if !gjson.ParseBytes(raw).IsArray() {
		return nil, errs.Wrap(errs.ErrValidation, "artifacts", op, "candidates payload must be a list", nil)
	}
	var cands []types.CandidateSegment
	if err := json.Unmarshal(raw, &cands); err != nil {
		return nil, errs.Wrap(errs.ErrArtifactMalformed, "artifacts", op, "", err)
	}
	return cands, nil
}

// WriteCandidates persists the candidate list as indented JSON.
func WriteCandidates(path string, cands []types.CandidateSegment) error {
	if cands == nil {
		cands = []types.CandidateSegment{}
	}
	return writeJSON(path, cands)
}

// WriteScored persists the scored candidate list as indented JSON.
func WriteScored(path string, scored []types.ScoredCandidate) error {
	if scored == nil {
		scored = []types.ScoredCandidate{}
	}
	return writeJSON(path, scored)
}

// WriteSelected persists the final selection as indented JSON.
func WriteSelected(path string, selected []types.ScoredCandidate) error {
	if selected == nil {
		selected = []types.ScoredCandidate{}
	}
	return writeJSON(path, selected)
}

func readArtifact(path, op string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrArtifactNotFound, "artifacts", op, path, err)
		}
		return nil, errs.Wrap(errs.ErrArtifactMalformed, "artifacts", op, path, err)
	}
	return raw, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
