// Package state persists the conversion journal between pipeline runs.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultRetryLimit is the attempt ceiling beyond which a file is no longer
// retried automatically.
const DefaultRetryLimit = 3

// ErrCorrupt reports that a state file existed but could not be decoded.
// Load still returns a usable empty state alongside it; the caller decides
// whether to proceed or abort.
var ErrCorrupt = errors.New("corrupt state file")

// FailureRecord tracks one file's conversion failures across runs.
type FailureRecord struct {
	AttemptCount int    `json:"attemptCount"`
	LastAttempt  string `json:"lastAttempt"`
	LastError    string `json:"lastError"`
	SourceCommit string `json:"sourceCommit"`
}

// SuccessRecord marks a file as converted.
type SuccessRecord struct {
	ConvertedAt  string `json:"convertedAt"`
	SourceCommit string `json:"sourceCommit"`
	SourceHash   string `json:"sourceHash"`
}

// State is the persisted journal.
type State struct {
	FailedFiles         map[string]FailureRecord `json:"failedFiles"`
	SuccessfulFiles     map[string]SuccessRecord `json:"successfulFiles"`
	LastProcessedCommit string                   `json:"lastProcessedCommit"`
	LastSuccessfulRun   string                   `json:"lastSuccessfulRun"`
}

// Empty returns a state with initialized maps.
func Empty() *State {
	return &State{
		FailedFiles:     make(map[string]FailureRecord),
		SuccessfulFiles: make(map[string]SuccessRecord),
	}
}

func (s *State) ensureMaps() {
	if s.FailedFiles == nil {
		s.FailedFiles = make(map[string]FailureRecord)
	}
	if s.SuccessfulFiles == nil {
		s.SuccessfulFiles = make(map[string]SuccessRecord)
	}
}

// Load reads the journal at path. A missing file is a normal first run and
// yields an empty state with no error. A file that exists but does not
// decode yields an empty state AND an error wrapping ErrCorrupt, so the
// caller can choose between continuing fresh and aborting.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty(), nil
		}
		return Empty(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	var loaded State
	if err := json.Unmarshal(data, &loaded); err != nil {
		return Empty(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	loaded.ensureMaps()
	return &loaded, nil
}

// Update describes one run's outcome.
type Update struct {
	// Processed maps successfully converted paths to their content hash
	// (hash may be empty).
	Processed map[string]string
	// Failed maps failed paths to a textual reason.
	Failed map[string]string
	// Commit is the source revision this run processed.
	Commit string
	// Now stamps the records; the zero value means time.Now.
	Now time.Time
}

// Merge applies an update to a prior state and returns the merged copy. The
// prior state is not mutated. A path that succeeded sheds any residual
// failure record; a path that failed gets its attempt counter incremented
// (initialized to 1) and its last-attempt fields overwritten. Repeated
// merges of the same successful set are idempotent on the failure map.
func Merge(prior *State, update Update) *State {
	now := update.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	stamp := now.UTC().Format(time.RFC3339)

	merged := Empty()
	merged.LastProcessedCommit = prior.LastProcessedCommit
	merged.LastSuccessfulRun = prior.LastSuccessfulRun
	for path, record := range prior.FailedFiles {
		merged.FailedFiles[path] = record
	}
	for path, record := range prior.SuccessfulFiles {
		merged.SuccessfulFiles[path] = record
	}

	for path, hash := range update.Processed {
		delete(merged.FailedFiles, path)
		merged.SuccessfulFiles[path] = SuccessRecord{
			ConvertedAt:  stamp,
			SourceCommit: update.Commit,
			SourceHash:   hash,
		}
	}
	for path, reason := range update.Failed {
		record := merged.FailedFiles[path]
		record.AttemptCount++
		record.LastAttempt = stamp
		record.LastError = reason
		record.SourceCommit = update.Commit
		merged.FailedFiles[path] = record
	}

	if update.Commit != "" {
		merged.LastProcessedCommit = update.Commit
	}
	if len(update.Processed) > 0 {
		merged.LastSuccessfulRun = stamp
	}
	return merged
}

// RetryCandidates returns the failed paths whose attempt count is still below
// limit, sorted for stable output. Files at or above the limit need manual
// intervention.
func (s *State) RetryCandidates(limit int) []string {
	if limit <= 0 {
		limit = DefaultRetryLimit
	}
	var candidates []string
	for path, record := range s.FailedFiles {
		if record.AttemptCount < limit {
			candidates = append(candidates, path)
		}
	}
	sort.Strings(candidates)
	return candidates
}

// Write persists the state to path via a temp file and rename, so a crash
// mid-write never leaves a truncated journal behind.
func Write(s *State, path string) error {
	s.ensureMaps()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp state: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("promote state: %w", err)
	}
	return nil
}

// NextPath derives the hand-off path for a merged state so the prior journal
// stays intact until the caller promotes the new one.
func NextPath(statePath string) string {
	return statePath + ".new"
}

// UpdateFromEnv builds an Update from the CI-provided environment: GITHUB_SHA
// for the revision, PROCESSED_FILES and FAILED_FILES as whitespace-separated
// path lists. lookup is usually os.Getenv.
func UpdateFromEnv(lookup func(string) string) Update {
	update := Update{
		Processed: make(map[string]string),
		Failed:    make(map[string]string),
		Commit:    strings.TrimSpace(lookup("GITHUB_SHA")),
	}
	for _, path := range strings.Fields(lookup("PROCESSED_FILES")) {
		update.Processed[path] = ""
	}
	for _, path := range strings.Fields(lookup("FAILED_FILES")) {
		update.Failed[path] = "conversion failed"
	}
	return update
}
