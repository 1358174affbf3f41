package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const fileWatchInterval = time.Second

// FileStorage persists values as a JSON object in a single file. Writes go
// through a temp file rename so concurrent readers never see a torn
// document.
type FileStorage struct {
	path string

	mu sync.Mutex
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Load() (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadLocked()
}

func (f *FileStorage) loadLocked() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return values, nil
}

func (f *FileStorage) Store(values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.loadLocked()
	if err != nil {
		current = map[string]string{}
	}
	for k, v := range values {
		if v == "" {
			delete(current, k)
			continue
		}
		current[k] = v
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// Watch polls the file's mtime and fires onChange when another process
// rewrites it. Self-writes also trigger a poll hit; the store's own change
// comparison suppresses the redundant publish.
func (f *FileStorage) Watch(onChange func()) (func(), error) {
	done := make(chan struct{})
	var last time.Time
	if info, err := os.Stat(f.path); err == nil {
		last = info.ModTime()
	}

	go func() {
		ticker := time.NewTicker(fileWatchInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				info, err := os.Stat(f.path)
				if err != nil {
					continue
				}
				if mod := info.ModTime(); mod.After(last) {
					last = mod
					onChange()
				}
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}
