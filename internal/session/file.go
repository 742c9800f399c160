package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps sessions in a JSON file; the CLI uses it to stay logged in between runs.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFilePath returns ~/.spacia/session.json.
func DefaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %v", err)
	}
	return filepath.Join(home, ".spacia", "session.json"), nil
}

func (f *FileStore) load() (map[string]*Session, error) {
	sessions := map[string]*Session{}
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return sessions, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %v", err)
	}
	if len(data) == 0 {
		return sessions, nil
	}
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %v", err)
	}
	return sessions, nil
}

func (f *FileStore) write(sessions map[string]*Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %v", err)
	}
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %v", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %v", err)
	}
	return nil
}

func (f *FileStore) Save(ctx context.Context, s *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sessions, err := f.load()
	if err != nil {
		return err
	}
	copied := *s
	sessions[s.ID] = &copied
	return f.write(sessions)
}

func (f *FileStore) Get(ctx context.Context, id string) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sessions, err := f.load()
	if err != nil {
		return nil, err
	}
	s, ok := sessions[id]
	if !ok || s.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return s, nil
}

func (f *FileStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sessions, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := sessions[id]; !ok {
		return nil
	}
	delete(sessions, id)
	return f.write(sessions)
}
