package consent

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// record is the on-disk shape of the consent flag.
type record struct {
	Accepted bool `json:"accepted"`
}

// FileStore persists the consent flag as a small JSON file.  Writes are
// atomic (temp file + rename); a missing or corrupt file reads as false.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore builds a FileStore at dir/consent.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "consent.json")}
}

// Read loads the persisted flag.
func (s *FileStore) Read() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		// Corrupt file: treat as never consented rather than failing the flow.
		return false, nil
	}
	return rec.Accepted, nil
}

// Write persists the flag.
func (s *FileStore) Write(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(record{Accepted: v}, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "consent-*.json.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.path)
}

// MemoryStore is an in-memory Store for tests and the offline client.
type MemoryStore struct {
	mu       sync.Mutex
	accepted bool
}

// Read returns the current flag.
func (s *MemoryStore) Read() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accepted, nil
}

// Write sets the flag.
func (s *MemoryStore) Write(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accepted = v
	return nil
}
