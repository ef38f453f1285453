package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	gojson "github.com/goccy/go-json"
)

// FileAdapter keeps messages in a single JSON object on disk so threads
// survive process restarts. Every write rewrites the file. It is safe for
// concurrent use within one process only.
type FileAdapter struct {
	mu   sync.RWMutex
	path string
	data map[string]json.RawMessage
}

// NewFileAdapter opens the store at path, creating it on first write.
func NewFileAdapter(path string) (*FileAdapter, error) {
	a := &FileAdapter{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return a, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(raw) == 0 {
		return a, nil
	}
	if err := gojson.Unmarshal(raw, &a.data); err != nil {
		return nil, &SerializationError{Key: path, Err: err}
	}
	return a, nil
}

// Path returns the backing file.
func (a *FileAdapter) Path() string {
	return a.path
}

func (a *FileAdapter) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.data[key]
	return v, ok, nil
}

func (a *FileAdapter) Set(_ context.Context, key string, value json.RawMessage) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data[key] = value
	return a.flush()
}

func (a *FileAdapter) Delete(_ context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.data[key]; !ok {
		return nil
	}
	delete(a.data, key)
	return a.flush()
}

func (a *FileAdapter) Len(_ context.Context) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.data), nil
}

func (a *FileAdapter) Clear(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data = make(map[string]json.RawMessage)
	return a.flush()
}

// flush writes through a temp file and rename. Callers hold mu.
func (a *FileAdapter) flush() error {
	raw, err := gojson.Marshal(a.data)
	if err != nil {
		return &SerializationError{Key: a.path, Err: err}
	}

	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(a.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp.Name(), a.path); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}

var _ Adapter = (*FileAdapter)(nil)
