// Package store memoizes gold table loads for the process lifetime.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bakewatt/bakewatt/core/model"
	"github.com/bakewatt/bakewatt/core/pricetable"
)

type entry struct {
	table   *pricetable.Table
	modTime time.Time
}

// Store caches loaded tables keyed by canonical file path. A cached entry is
// reused while the file's mtime is unchanged and reloaded otherwise. Tables
// are read-only after load, so concurrent readers share them safely.
type Store struct {
	mu    sync.RWMutex
	cache map[string]entry
}

// New returns an empty Store.
func New() *Store {
	return &Store{cache: make(map[string]entry)}
}

// Get returns the table at path, loading it on first use. A missing file is
// reported as *model.DataNotFoundError.
func (s *Store) Get(path string) (*pricetable.Table, error) {
	canonical, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(canonical)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &model.DataNotFoundError{Path: canonical}
		}
		return nil, fmt.Errorf("stat gold table: %w", err)
	}

	s.mu.RLock()
	e, ok := s.cache[canonical]
	s.mu.RUnlock()
	if ok && e.modTime.Equal(info.ModTime()) {
		return e.table, nil
	}

	table, err := pricetable.Load(canonical)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[canonical] = entry{table: table, modTime: info.ModTime()}
	s.mu.Unlock()
	return table, nil
}
