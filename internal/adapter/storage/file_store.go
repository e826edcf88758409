// internal/adapter/storage/file_store.go

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sentilytics/internal/domain/analysis"
)

// maxFileRuns bounds the run history kept in the state file
const maxFileRuns = 500

// FileStore keeps last queries and run history in a local JSON file. It is
// used by the CLI and by deployments without Postgres.
type FileStore struct {
	path string

	mu   sync.RWMutex
	data fileData
}

type fileData struct {
	LastQueries map[string]string `json:"last_queries"`
	Runs        []analysis.Run    `json:"runs"`
}

var (
	_ analysis.QueryStore  = (*FileStore)(nil)
	_ analysis.RunRecorder = (*FileStore)(nil)
)

// NewFileStore opens the state file at path, creating its directory
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		data: fileData{
			LastQueries: make(map[string]string),
		},
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("error creating state directory: %w", err)
	}
	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading state file: %w", err)
	}
	return s, nil
}

func (s *FileStore) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return err
	}
	if s.data.LastQueries == nil {
		s.data.LastQueries = make(map[string]string)
	}
	return nil
}

// save writes through a temp file so a crash never leaves a torn file
func (s *FileStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// LoadLastQuery implements analysis.QueryStore
func (s *FileStore) LoadLastQuery(_ context.Context, clientKey string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.LastQueries[clientKey], nil
}

// SaveLastQuery implements analysis.QueryStore
func (s *FileStore) SaveLastQuery(_ context.Context, clientKey string, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.LastQueries[clientKey] = query
	if err := s.save(); err != nil {
		return fmt.Errorf("error saving last query: %w", err)
	}
	return nil
}

// RecordRun implements analysis.RunRecorder
func (s *FileStore) RecordRun(_ context.Context, run analysis.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Runs = append(s.data.Runs, run)
	if len(s.data.Runs) > maxFileRuns {
		s.data.Runs = s.data.Runs[len(s.data.Runs)-maxFileRuns:]
	}
	if err := s.save(); err != nil {
		return fmt.Errorf("error recording run: %w", err)
	}
	return nil
}

// ListRuns implements analysis.RunRecorder, newest first
func (s *FileStore) ListRuns(_ context.Context, limit int) ([]analysis.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultRunLimit
	}

	runs := make([]analysis.Run, 0, limit)
	for i := len(s.data.Runs) - 1; i >= 0 && len(runs) < limit; i-- {
		runs = append(runs, s.data.Runs[i])
	}
	return runs, nil
}
