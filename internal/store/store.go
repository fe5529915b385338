// Package store persists the session collection as a single
// schema-versioned JSON blob on the local filesystem, with atomic writes.
// The update primitive is deliberately coarse: read the full collection,
// replace the matching record by id, write the full collection back. That
// is sound only under single-process, single-writer execution; a
// multi-device backend would need per-session version stamps and
// compare-and-swap writes.
//
// Corrupted or schema-incompatible data degrades to an empty collection
// rather than failing, so the surrounding surface always has something
// renderable. The unreadable data is discarded on the next write; this is
// an accepted trade-off, not a recoverable error path.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/concordapp/concord/internal/errors"
	"github.com/concordapp/concord/internal/negotiation"
)

// SchemaVersion identifies the persisted layout. A blob carrying any other
// version is treated as unreadable and wiped on the next write.
const SchemaVersion = 1

const fileName = "sessions.json"

// envelope is the on-disk layout.
type envelope struct {
	SchemaVersion int                   `json:"schema_version"`
	Sessions      []negotiation.Session `json:"sessions"`
}

// Store is a file-backed session collection. It is safe for concurrent use
// within a single process.
type Store struct {
	mu   sync.RWMutex
	dir  string
	path string
}

// Open creates a store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &Store{dir: dir, path: filepath.Join(dir, fileName)}, nil
}

// Path returns the location of the sessions file.
func (s *Store) Path() string {
	return s.path
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// List returns every session in the collection. A missing, corrupted or
// schema-mismatched file yields an empty collection, never an error.
func (s *Store) List() ([]negotiation.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// Get returns the session with the given id.
func (s *Store) Get(id string) (negotiation.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions, err := s.load()
	if err != nil {
		return negotiation.Session{}, err
	}
	for _, sess := range sessions {
		if sess.ID == id {
			return sess, nil
		}
	}
	return negotiation.Session{}, fmt.Errorf("%w: %s", errors.ErrSessionNotFound, id)
}

// Put writes a session into the collection, replacing any record with the
// same id. The full collection is rewritten atomically.
func (s *Store) Put(sess negotiation.Session) error {
	if sess.ID == "" {
		return errors.NewValidationError("id", "session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range sessions {
		if existing.ID == sess.ID {
			sessions[i] = sess
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append(sessions, sess)
	}

	data, err := json.MarshalIndent(envelope{
		SchemaVersion: SchemaVersion,
		Sessions:      sessions,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	return atomicWriteFile(s.path, data, 0o644)
}

// load reads the collection without locking. Unreadable data degrades to
// an empty collection; only genuine I/O failures surface as errors.
func (s *Store) load() ([]negotiation.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sessions file: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil
	}
	if env.SchemaVersion != SchemaVersion {
		return nil, nil
	}
	return env.Sessions, nil
}

// atomicWriteFile writes data via a temp file and rename so the target is
// never observed half-written.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}
