package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// namespacePattern restricts namespaces to names that are safe as file names.
var namespacePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// FileStore stores one JSON file per namespace under a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a file-backed snapshot store rooted at dir.
// The directory is created on the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads the envelope for a namespace. Returns ErrNoSnapshot if the
// namespace file does not exist or is empty.
func (s *FileStore) Load(namespace string) (Envelope, error) {
	path, err := s.path(namespace)
	if err != nil {
		return Envelope{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Envelope{}, ErrNoSnapshot
		}
		return Envelope{}, fmt.Errorf("read snapshot %s: %w", namespace, err)
	}
	if len(data) == 0 {
		return Envelope{}, ErrNoSnapshot
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("parse snapshot %s: %w", namespace, err)
	}
	return env, nil
}

// Save writes the envelope for a namespace atomically (write to a temp
// file, then rename).
func (s *FileStore) Save(namespace string, env Envelope) error {
	path, err := s.path(namespace)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", namespace, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", namespace, err)
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) path(namespace string) (string, error) {
	if !namespacePattern.MatchString(namespace) {
		return "", fmt.Errorf("persist: invalid namespace %q", namespace)
	}
	return filepath.Join(s.dir, namespace+".json"), nil
}
