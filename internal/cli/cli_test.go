package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clipworks/ecc/internal/artifacts"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeArtifacts(t *testing.T) (string, string, string) {
	t.Helper()
	tmp := t.TempDir()
	transcriptPath := filepath.Join(tmp, "transcript.json")
	scenesPath := filepath.Join(tmp, "scenes.json")
	transcript := `{"segments": [
		{"start_ms": 0, "end_ms": 4000, "text": "Plenty of words in this one."},
		{"start_ms": 4100, "end_ms": 7500, "text": "And a few more here."}
	]}`
	scenes := `[{"scene_id": 0, "start_ms": 0, "end_ms": 8000}]`
	if err := os.WriteFile(transcriptPath, []byte(transcript), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
	if err := os.WriteFile(scenesPath, []byte(scenes), 0o644); err != nil {
		t.Fatalf("write scenes: %v", err)
	}
	return tmp, transcriptPath, scenesPath
}

func TestCandidatesCommand(t *testing.T) {
	tmp, transcriptPath, scenesPath := writeArtifacts(t)
	outPath := filepath.Join(tmp, "candidates.json")

	out, err := execute(t,
		"candidates",
		"--transcript", transcriptPath,
		"--scenes", scenesPath,
		"--out", outPath,
	)
	if err != nil {
		t.Fatalf("candidates: %v\n%s", err, out)
	}
	cands, err := artifacts.LoadCandidates(outPath)
	if err != nil {
		t.Fatalf("load output: %v", err)
	}
	if len(cands) != 1 || cands[0].CandidateID != "scene-0-0" {
		t.Fatalf("unexpected candidates: %+v", cands)
	}
	if !strings.Contains(out, "1 candidates written") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSelectCommand(t *testing.T) {
	tmp, transcriptPath, scenesPath := writeArtifacts(t)
	candidatesPath := filepath.Join(tmp, "candidates.json")
	selectedPath := filepath.Join(tmp, "selected.json")

	if _, err := execute(t,
		"candidates",
		"--transcript", transcriptPath,
		"--scenes", scenesPath,
		"--out", candidatesPath,
	); err != nil {
		t.Fatalf("candidates: %v", err)
	}

	out, err := execute(t,
		"select",
		"--candidates", candidatesPath,
		"--out", selectedPath,
	)
	if err != nil {
		t.Fatalf("select: %v\n%s", err, out)
	}
	if !strings.Contains(out, "scene-0-0") {
		t.Fatalf("expected selection table to list the clip, got %q", out)
	}
	if _, err := os.Stat(selectedPath); err != nil {
		t.Fatalf("expected selected artifact: %v", err)
	}
}

func TestRunCommand(t *testing.T) {
	tmp, transcriptPath, scenesPath := writeArtifacts(t)

	out, err := execute(t,
		"run",
		"--transcript", transcriptPath,
		"--scenes", scenesPath,
		"--out", filepath.Join(tmp, "runs"),
	)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "artifacts: ") {
		t.Fatalf("expected run dir in output, got %q", out)
	}
}

func TestRunCommand_MissingRequiredFlags(t *testing.T) {
	_, err := execute(t, "run")
	if err == nil || !strings.Contains(err.Error(), "required flag") {
		t.Fatalf("expected required-flag error, got %v", err)
	}
}

func TestUnknownFlag(t *testing.T) {
	_, err := execute(t, "run", "--wat")
	if err == nil || !strings.Contains(err.Error(), "unknown flag") {
		t.Fatalf("expected unknown-flag error, got %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "ecc.toml")

	out, err := execute(t, "config", "init", "--path", path)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	if _, err := execute(t, "config", "init", "--path", path); err == nil {
		t.Fatalf("expected overwrite refusal")
	}

	out, err = execute(t, "config", "show", "--config", path, "--max-candidates", "5")
	if err != nil {
		t.Fatalf("config show: %v\n%s", err, out)
	}
	if !strings.Contains(out, "max_candidates = 5") {
		t.Fatalf("expected flag override in shown config, got %q", out)
	}
}
