package state

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

var testNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "no-such-state.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(s.FailedFiles) != 0 || len(s.SuccessfulFiles) != 0 {
		t.Fatalf("expected empty state, got %+v", s)
	}
}

func TestLoadCorruptFileReturnsEmptyAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Load(path)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if s == nil || len(s.FailedFiles) != 0 {
		t.Fatalf("expected usable empty state, got %+v", s)
	}
}

func TestMergeSuccessClearsFailure(t *testing.T) {
	prior := Empty()
	prior.FailedFiles["a.fodt"] = FailureRecord{AttemptCount: 2, LastError: "boom"}

	merged := Merge(prior, Update{
		Processed: map[string]string{"a.fodt": "deadbeef"},
		Commit:    "sha1",
		Now:       testNow,
	})

	if _, present := merged.FailedFiles["a.fodt"]; present {
		t.Fatal("failure record should be removed on success")
	}
	success := merged.SuccessfulFiles["a.fodt"]
	if success.SourceCommit != "sha1" || success.SourceHash != "deadbeef" {
		t.Fatalf("unexpected success record: %+v", success)
	}
	if success.ConvertedAt != "2026-08-20T12:00:00Z" {
		t.Fatalf("unexpected timestamp: %q", success.ConvertedAt)
	}
	if merged.LastProcessedCommit != "sha1" || merged.LastSuccessfulRun != "2026-08-20T12:00:00Z" {
		t.Fatalf("unexpected markers: %+v", merged)
	}
}

func TestMergeFailureIncrementsAttempts(t *testing.T) {
	prior := Empty()
	prior.FailedFiles["a.fodt"] = FailureRecord{AttemptCount: 2}

	merged := Merge(prior, Update{
		Failed: map[string]string{"a.fodt": "soffice exit 1", "b.fodt": "pandoc missing"},
		Commit: "sha2",
		Now:    testNow,
	})

	if got := merged.FailedFiles["a.fodt"].AttemptCount; got != 3 {
		t.Fatalf("expected attempt count 3, got %d", got)
	}
	if got := merged.FailedFiles["b.fodt"].AttemptCount; got != 1 {
		t.Fatalf("expected new failure initialized to 1, got %d", got)
	}
	if merged.FailedFiles["a.fodt"].LastError != "soffice exit 1" {
		t.Fatalf("last error not overwritten: %+v", merged.FailedFiles["a.fodt"])
	}
	if merged.LastSuccessfulRun != "" {
		t.Fatal("failed-only run must not stamp lastSuccessfulRun")
	}
}

func TestMergeIsIdempotentForRepeatedSuccesses(t *testing.T) {
	prior := Empty()
	prior.FailedFiles["other.fodt"] = FailureRecord{AttemptCount: 1}

	update := Update{Processed: map[string]string{"a.fodt": ""}, Commit: "sha", Now: testNow}
	once := Merge(prior, update)
	twice := Merge(once, update)

	if !reflect.DeepEqual(once.FailedFiles, twice.FailedFiles) {
		t.Fatalf("failure map changed on re-merge: %+v vs %+v", once.FailedFiles, twice.FailedFiles)
	}
}

func TestMergeDoesNotMutatePrior(t *testing.T) {
	prior := Empty()
	prior.FailedFiles["a.fodt"] = FailureRecord{AttemptCount: 1}

	Merge(prior, Update{Failed: map[string]string{"a.fodt": "x"}, Now: testNow})
	if prior.FailedFiles["a.fodt"].AttemptCount != 1 {
		t.Fatal("prior state mutated")
	}
}

func TestRetryCandidatesGating(t *testing.T) {
	s := Empty()
	s.FailedFiles["zero.fodt"] = FailureRecord{AttemptCount: 0}
	s.FailedFiles["one.fodt"] = FailureRecord{AttemptCount: 1}
	s.FailedFiles["two.fodt"] = FailureRecord{AttemptCount: 2}
	s.FailedFiles["three.fodt"] = FailureRecord{AttemptCount: 3}
	s.FailedFiles["four.fodt"] = FailureRecord{AttemptCount: 4}

	got := s.RetryCandidates(DefaultRetryLimit)
	want := []string{"one.fodt", "two.fodt", "zero.fodt"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
}

func TestWriteThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")

	s := Empty()
	s.FailedFiles["a.fodt"] = FailureRecord{AttemptCount: 2, LastError: "boom", LastAttempt: "2026-08-19T00:00:00Z", SourceCommit: "sha"}
	s.SuccessfulFiles["b.fodt"] = SuccessRecord{ConvertedAt: "2026-08-19T00:00:00Z", SourceCommit: "sha", SourceHash: "abc"}
	s.LastProcessedCommit = "sha"

	if err := Write(s, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(s, loaded) {
		t.Fatalf("round trip mismatch:\nwrote %+v\nread  %+v", s, loaded)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %v", entries)
	}
}

func TestUpdateFromEnvScenario(t *testing.T) {
	env := map[string]string{
		"GITHUB_SHA":      "abc123",
		"PROCESSED_FILES": "ok1.fodt  ok2.fodt",
		"FAILED_FILES":    "a.fodt",
	}
	update := UpdateFromEnv(func(key string) string { return env[key] })

	if update.Commit != "abc123" {
		t.Fatalf("unexpected commit %q", update.Commit)
	}
	if len(update.Processed) != 2 || len(update.Failed) != 1 {
		t.Fatalf("unexpected update: %+v", update)
	}

	prior := Empty()
	prior.FailedFiles["a.fodt"] = FailureRecord{AttemptCount: 2}
	update.Now = testNow
	merged := Merge(prior, update)

	if merged.FailedFiles["a.fodt"].AttemptCount != 3 {
		t.Fatalf("expected increment to 3, got %+v", merged.FailedFiles["a.fodt"])
	}
	for _, candidate := range merged.RetryCandidates(DefaultRetryLimit) {
		if candidate == "a.fodt" {
			t.Fatal("a.fodt reached the ceiling and must be excluded")
		}
	}
}

func TestNextPath(t *testing.T) {
	if got := NextPath("/run/state.json"); got != "/run/state.json.new" {
		t.Fatalf("unexpected next path %q", got)
	}
}
