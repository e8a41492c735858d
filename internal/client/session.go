package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SessionStore persists the bearer token between runs.
type SessionStore interface {
	SaveToken(token string) error
	ClearToken() error
	// CurrentToken returns "" when no token is stored.
	CurrentToken() (string, error)
}

// MemoryStore keeps the token for the life of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func (m *MemoryStore) SaveToken(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) ClearToken() error { return m.SaveToken("") }

func (m *MemoryStore) CurrentToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

// FileSessionStore keeps the token in a file readable only by the owner.
type FileSessionStore struct {
	Path string
}

func NewFileSessionStore(path string) *FileSessionStore { return &FileSessionStore{Path: path} }

func (f *FileSessionStore) SaveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

func (f *FileSessionStore) ClearToken() error {
	err := os.Remove(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileSessionStore) CurrentToken() (string, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
