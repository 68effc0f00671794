package validator

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// Storage abstraction of json schema source
type Storage interface {
	Get(schemaID string) (string, error)
	Store(schemaID string, schema string) error
}

type inMemStorage struct {
	mu      sync.RWMutex
	storage map[string]string
}

// NewInMemStorage in memory schema storage
func NewInMemStorage() Storage {
	return &inMemStorage{storage: make(map[string]string)}
}

// NewFSStorage load every .json file under root, schema id is "$id" or the file path without extension
func NewFSStorage(fsys fs.FS, root string) (Storage, error) {
	st := NewInMemStorage()
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}
		s, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		var data map[string]interface{}
		if err := json.Unmarshal(s, &data); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		id, ok := data["$id"].(string)
		if !ok {
			id = strings.Trim(strings.TrimSuffix(strings.TrimPrefix(p, root), path.Ext(p)), "/")
		}
		return st.Store(id, string(s))
	})
	return st, err
}

func (s *inMemStorage) Get(schemaID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schema, ok := s.storage[schemaID]
	if !ok {
		return "", fmt.Errorf("schema '%s' not found", schemaID)
	}
	return schema, nil
}

func (s *inMemStorage) Store(schemaID string, schema string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storage[schemaID] = schema
	return nil
}
