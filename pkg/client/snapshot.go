package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"foodie/pkg/apimodel"

	"github.com/pkg/errors"
)

// Snapshot is the locally persisted view of the last session. The user is
// advisory only; Refresh replaces it with what the server returns.
type Snapshot struct {
	User         *apimodel.User `json:"user"`
	RefreshToken string         `json:"refresh_token,omitempty"`
	SavedAt      time.Time      `json:"saved_at"`
}

// SnapshotStore persists a Snapshot. Load returns nil when nothing is stored.
type SnapshotStore interface {
	Load() (*Snapshot, error)
	Save(snapshot *Snapshot) error
	Clear() error
}

// FileSnapshotStore keeps the snapshot in a single JSON file.
type FileSnapshotStore struct {
	path string
}

// NewFileSnapshotStore stores the snapshot at path. The parent directory is
// created on first save.
func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path}
}

// Load reads the snapshot file.
func (s *FileSnapshotStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "read snapshot")
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	if snapshot.User == nil {
		return nil, nil
	}

	return &snapshot, nil
}

// Save replaces the snapshot file atomically.
func (s *FileSnapshotStore) Save(snapshot *Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.WithStack(err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "create snapshot directory")
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return errors.Wrap(err, "create snapshot temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return errors.Wrap(err, "write snapshot")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close snapshot")
	}

	return errors.Wrap(os.Rename(tmp.Name(), s.path), "replace snapshot")
}

// Clear removes the snapshot file.
func (s *FileSnapshotStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "remove snapshot")
	}

	return nil
}

type noopSnapshotStore struct{}

func (noopSnapshotStore) Load() (*Snapshot, error) { return nil, nil }
func (noopSnapshotStore) Save(*Snapshot) error     { return nil }
func (noopSnapshotStore) Clear() error             { return nil }
