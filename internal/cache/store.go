package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Snapshot is the full persisted article set for one filter, keyed by
// identity key.
type Snapshot map[string]Article

// Store persists one snapshot file per filter (and optional topic) under
// a save directory. The file is the whole deduplicated set; it is read
// once at run start and replaced once at run end.
type Store struct {
	dir  string
	name string

	// swapped out in tests to exercise the write-failure path
	rename func(oldpath, newpath string) error
}

func NewStore(dir, filter, topic string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating save dir: %w", err)
	}
	name := "cryptopanic"
	if filter != "" {
		name += "_" + slug(filter)
	}
	if topic != "" {
		name += "_" + slug(topic)
	}
	name += "_cache.json"
	return &Store{dir: dir, name: name, rename: os.Rename}, nil
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, s.name)
}

// Load reads the persisted snapshot. A missing file is not an error;
// the run simply starts with an empty set.
func (s *Store) Load() (Snapshot, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", s.Path(), err)
	}
	if snap == nil {
		snap = Snapshot{}
	}
	return snap, nil
}

// Merge folds newly collected articles into an existing snapshot.
// Entries collide on identity key and the new article wins; entries only
// in existing are retained. The inputs are not mutated.
func Merge(existing Snapshot, collected []Article) Snapshot {
	merged := make(Snapshot, len(existing)+len(collected))
	for k, a := range existing {
		merged[k] = a
	}
	for _, a := range collected {
		merged[a.Key()] = a
	}
	return merged
}

// Save merges and persists. The snapshot is written to a temp file in
// the same directory and renamed into place, so a failed write leaves
// the previous snapshot readable. The merged set is returned even when
// the write fails, so a caller can still report it.
func (s *Store) Save(existing Snapshot, collected []Article) (Snapshot, error) {
	merged := Merge(existing, collected)
	if err := s.write(merged); err != nil {
		return merged, err
	}
	return merged, nil
}

func (s *Store) write(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, s.name+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp snapshot: %w", err)
	}
	if err := s.rename(tmp.Name(), s.Path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
}
