// Package prefs is a small persistent key-value store for desktop
// preferences and application data.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
)

// Well-known keys.
const (
	KeyWallpaper    = "anshos-wallpaper"
	KeyTaskbarColor = "anshos-taskbar-color"
	KeyTodos        = "anshos-todos"
	KeyNotepad      = "anshos-notepad"
)

// Store reads and writes string values by key.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)
}

type document struct {
	Values map[string]string `toml:"values"`
}

// File is a Store backed by a TOML file. Reads take a shared lock and
// writes take an exclusive lock, so several processes may use one file.
type File struct {
	path string
}

// Open returns a File store at path. The file is created on first write.
func Open(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("prefs path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create prefs directory: %w", err)
	}
	return &File{path: path}, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

func (f *File) lock() *flock.Flock {
	return flock.New(f.path + ".lock")
}

func (f *File) read() (document, error) {
	doc := document{Values: map[string]string{}}
	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		return doc, nil
	}
	if _, err := toml.DecodeFile(f.path, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse prefs file: %w", err)
	}
	if doc.Values == nil {
		doc.Values = map[string]string{}
	}
	return doc, nil
}

func (f *File) write(doc document) error {
	tmpPath := f.path + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := toml.NewEncoder(out).Encode(doc); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode prefs: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func (f *File) Get(key string) (string, bool, error) {
	lock := f.lock()
	if err := lock.RLock(); err != nil {
		return "", false, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	defer lock.Unlock()

	doc, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := doc.Values[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return f.update(func(values map[string]string) {
		values[key] = value
	})
}

func (f *File) Delete(key string) error {
	return f.update(func(values map[string]string) {
		delete(values, key)
	})
}

func (f *File) Keys() ([]string, error) {
	lock := f.lock()
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	defer lock.Unlock()

	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return sortedKeys(doc.Values), nil
}

func (f *File) update(fn func(map[string]string)) error {
	lock := f.lock()
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	fn(doc.Values)
	return f.write(doc)
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.values), nil
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("prefs key is required")
	}
	if strings.ContainsAny(key, "\n\r") {
		return fmt.Errorf("invalid prefs key %q", key)
	}
	return nil
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
