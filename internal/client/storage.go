// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eliel Filho

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/elielfilhodev/treino/models"
)

// TokenStorage persists the credential pair between calls and, for the file
// implementation, between process runs. Load returns a zero pair and no error
// when nothing is stored.
type TokenStorage interface {
	Load() (models.TokenPair, error)
	Save(pair models.TokenPair) error
	Clear() error
}

// MemoryTokenStorage holds the pair in process memory. Safe for concurrent
// use.
type MemoryTokenStorage struct {
	mu   sync.RWMutex
	pair models.TokenPair
}

func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{}
}

func (s *MemoryTokenStorage) Load() (models.TokenPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair, nil
}

func (s *MemoryTokenStorage) Save(pair models.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	return nil
}

func (s *MemoryTokenStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = models.TokenPair{}
	return nil
}

// FileTokenStorage persists the pair as JSON at a fixed path with 0600
// permissions.
type FileTokenStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStorage stores tokens at path, or at
// $HOME/.treino/tokens.json when path is empty.
func NewFileTokenStorage(path string) (*FileTokenStorage, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, ".treino", "tokens.json")
	}
	return &FileTokenStorage{path: path}, nil
}

func (s *FileTokenStorage) Load() (models.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.TokenPair{}, nil
	}
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("read token file: %w", err)
	}

	var pair models.TokenPair
	if err = json.Unmarshal(data, &pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("decode token file: %w", err)
	}
	return pair, nil
}

func (s *FileTokenStorage) Save(pair models.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode token pair: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *FileTokenStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
