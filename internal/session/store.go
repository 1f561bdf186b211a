// Package session holds the client's authentication state. It replaces the
// browser-localStorage singleton of a web client with an injectable store so
// the gateway, guard and dashboards can share one instance and tests can
// substitute their own.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Session is the authenticated identity bound to the client. A session is
// either fully authenticated (token and role both present) or treated as
// absent; partial state never authorizes anything.
type Session struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	PatientID int    `json:"patientId,omitempty"`
	DoctorID  int    `json:"doctorId,omitempty"`
}

func (s Session) Authenticated() bool { return s.Token != "" && s.Role != "" }

type Store interface {
	Get() Session
	Set(Session) error
	Clear() error
}

// MemStore keeps the session in memory only. Used by tests and short-lived
// clients.
type MemStore struct {
	mu sync.Mutex
	s  Session
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Get() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s
}

func (m *MemStore) Set(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = Session{}
	return nil
}

// FileStore persists the session as JSON under the fixed keys token, role,
// patientId and doctorId. A missing or unreadable file reads as an absent
// session.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (f *FileStore) Get() Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		return Session{}
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}
	}
	return s
}

func (f *FileStore) Set(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
