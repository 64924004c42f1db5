package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studyflow/matrixd/internal/model"
)

const snapshotVersion = 1

// Snapshot is the portable JSON form of the whole collection, used for
// export, import and plain-file backups of the database.
type Snapshot struct {
	Version int          `json:"version"`
	Tasks   []model.Task `json:"tasks"`
}

// WriteSnapshot writes the collection to path atomically via a temp file in
// the same directory.
func WriteSnapshot(path string, tasks []model.Task) error {
	snap := Snapshot{Version: snapshotVersion, Tasks: tasks}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a collection from path. A missing or unreadable file
// yields an empty collection rather than an error, so a fresh or damaged
// install starts clean.
func ReadSnapshot(path string) []model.Task {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil
	}
	out := make([]model.Task, 0, len(snap.Tasks))
	for _, task := range snap.Tasks {
		if err := task.Validate(); err != nil {
			continue
		}
		out = append(out, task)
	}
	return out
}

// ImportSnapshot strictly parses an export produced elsewhere. Unlike
// ReadSnapshot it reports what is wrong instead of discarding records.
func ImportSnapshot(path string) ([]model.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version > snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported %d", snap.Version, snapshotVersion)
	}
	for i, task := range snap.Tasks {
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("task %d (%s): %w", i, task.ID, err)
		}
	}
	return snap.Tasks, nil
}
