package database

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
)

// Opener opens the database stored at path. The returned closer releases
// the underlying handle.
type Opener func(path, name string) (DB, io.Closer, error)

type handle struct {
	db     DB
	closer io.Closer
}

var _ Manager = (*Registry)(nil)

// Registry is a Manager over any backend. Each name maps to dir/<name>.db
// and is opened at most once.
type Registry struct {
	dir  string
	open Opener

	mu  sync.Mutex
	dbs map[string]handle
}

func NewRegistry(dir string, open Opener) *Registry {
	return &Registry{
		dir:  dir,
		open: open,
		dbs:  make(map[string]handle),
	}
}

func (r *Registry) OpenDB(name string) (DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.dbs[name]; ok {
		return h.db, nil
	}
	db, closer, err := r.open(filepath.Join(r.dir, name+".db"), name)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", name, err)
	}
	r.dbs[name] = handle{db: db, closer: closer}
	return db, nil
}

func (r *Registry) CloseDB(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.dbs[name]
	if !ok {
		return fmt.Errorf("close database %s: %w", name, ErrUnknownDB)
	}
	delete(r.dbs, name)
	return h.closer.Close()
}

// Close releases every open database and reports all failures.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for name, h := range r.dbs {
		if err := h.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database %s: %w", name, err))
		}
		delete(r.dbs, name)
	}
	return errors.Join(errs...)
}
