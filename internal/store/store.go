package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crewload/crewload/internal/workload"
)

const (
	runsDirName = "runs"
	runSuffix   = "_analysis.json"

	// timestampLayout orders lexically, so filename sort is time sort.
	timestampLayout = "20060102_150405"
)

// Metadata identifies one persisted analysis run.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	RunID       string    `json:"run_id"`
	Identifier  string    `json:"identifier"`
}

// Run is the full persisted document for one analysis: metadata, the
// resolved date windows, the aggregate summary, and every member row.
// The row field set mirrors the calculator's output verbatim.
type Run struct {
	Metadata Metadata                `json:"metadata"`
	DateInfo workload.DateInfo       `json:"date_info"`
	Summary  workload.Summary        `json:"summary"`
	Rows     []workload.MemberResult `json:"results"`
}

// RunInfo describes one run file on disk, without loading its contents.
type RunInfo struct {
	Name    string
	Path    string
	ModTime time.Time
}

// Store persists analysis runs as timestamped JSON files under
// <base>/runs. Writes go through a temp file and a rename so a crash
// mid-write never leaves a truncated run behind.
type Store struct {
	base    string
	runsDir string
	now     func() time.Time // injectable for deterministic tests
}

// Open creates (if needed) and returns a Store rooted at base.
func Open(base string) (*Store, error) {
	runsDir := filepath.Join(base, runsDirName)
	if err := os.MkdirAll(runsDir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", runsDir, err)
	}
	return &Store{base: base, runsDir: runsDir, now: time.Now}, nil
}

// NewRun assembles a Run document from an analysis and its summary,
// stamping it with a fresh run ID and the current time.
func (s *Store) NewRun(identifier string, a *workload.Analysis, sum workload.Summary) *Run {
	return &Run{
		Metadata: Metadata{
			GeneratedAt: s.now(),
			RunID:       uuid.NewString(),
			Identifier:  identifier,
		},
		DateInfo: a.DateInfo,
		Summary:  sum,
		Rows:     a.Rows,
	}
}

// SaveRun writes the run to disk and returns the file path. The name is
// <timestamp>_<identifier>_analysis.json so listings sort by time.
func (s *Store) SaveRun(run *Run) (string, error) {
	name := fmt.Sprintf("%s_%s%s",
		run.Metadata.GeneratedAt.Format(timestampLayout),
		sanitize(run.Metadata.Identifier),
		runSuffix,
	)
	path := filepath.Join(s.runsDir, name)

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("store: marshal run: %w", err)
	}

	tmp, err := os.CreateTemp(s.runsDir, ".tmp-run-*")
	if err != nil {
		return "", fmt.Errorf("store: create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("store: write run: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("store: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("store: rename into place: %w", err)
	}

	slog.Info("store: run saved", "path", path, "members", len(run.Rows))
	return path, nil
}

// ListRuns returns up to limit run files, newest first. A limit of 0 or
// less means no bound.
func (s *Store) ListRuns(limit int) ([]RunInfo, error) {
	entries, err := os.ReadDir(s.runsDir)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", s.runsDir, err)
	}

	var runs []RunInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), runSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		runs = append(runs, RunInfo{
			Name:    e.Name(),
			Path:    filepath.Join(s.runsDir, e.Name()),
			ModTime: info.ModTime(),
		})
	}

	// Timestamped names sort lexically; newest first.
	sort.Slice(runs, func(i, j int) bool { return runs[i].Name > runs[j].Name })

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// LoadRun reads one persisted run.
func (s *Store) LoadRun(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read run: %w", err)
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("store: parse run %s: %w", path, err)
	}
	return &run, nil
}

// LoadLatest loads the newest run, or nil when none exist.
func (s *Store) LoadLatest() (*Run, error) {
	runs, err := s.ListRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return s.LoadRun(runs[0].Path)
}

// DeleteRun removes a run file. A file that is already gone counts as
// deleted.
func (s *Store) DeleteRun(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: delete run: %w", err)
	}
	return nil
}

// sanitize makes an identifier safe to embed in a filename.
func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '-'
		}
		return r
	}, id)
}
