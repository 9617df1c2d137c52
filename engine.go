package cmusearch

import (
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
)

// Engine is the host-facing entry point implementing spec.md §6's
// operation set. It owns at most one installed Store at a time; build and
// restore both happen into a local value first and are installed only on
// success, so no caller ever observes a partially built index (spec.md §7).
type Engine struct {
	mu    sync.RWMutex
	store *Store
}

// New returns an Engine with no installed index. IsEngineReady reports
// false until InitEngine or InitEngineFromCache succeeds.
func New() *Engine {
	return &Engine{}
}

// InitEngine builds a fresh Index Store from sources and config and
// installs it, replacing any previously installed store.
func (e *Engine) InitEngine(sources Sources, config Config, opts ...BuildOption) error {
	store, err := Build(sources, config, opts...)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.store = store
	e.mu.Unlock()

	slog.Debug("engine initialized", "documents", store.DocCount())
	return nil
}

// InitEngineFromCache restores an Index Store from a previously encoded
// blob (get_cachable_index's output), reattaching sources and config, and
// installs it on success.
func (e *Engine) InitEngineFromCache(encoded string, sources Sources, config Config) error {
	store, err := Decode(encoded, sources, config)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.store = store
	e.mu.Unlock()

	slog.Debug("engine restored from cache", "documents", store.DocCount())
	return nil
}

// SearchDocs tokenizes query and returns up to n ranked results. It
// returns ErrNotInitialized if no index has been built or restored yet.
func (e *Engine) SearchDocs(query string, n int) ([]Result, error) {
	e.mu.RLock()
	store := e.store
	e.mu.RUnlock()

	if store == nil {
		return nil, ErrNotInitialized
	}
	return Search(store, query, n), nil
}

// GetCachableIndex encodes the currently installed index to an opaque
// string. It returns ErrNotInitialized if no index has been built or
// restored yet.
func (e *Engine) GetCachableIndex() (string, error) {
	e.mu.RLock()
	store := e.store
	e.mu.RUnlock()

	if store == nil {
		return "", ErrNotInitialized
	}
	encoded, err := Encode(store)
	if err != nil {
		return "", errors.Wrap(err, "cmusearch: encode index")
	}
	return encoded, nil
}

// GetDocCount returns the total number of documents indexed. It returns
// ErrNotInitialized if no index has been built or restored yet.
func (e *Engine) GetDocCount() (int, error) {
	e.mu.RLock()
	store := e.store
	e.mu.RUnlock()

	if store == nil {
		return 0, ErrNotInitialized
	}
	return store.DocCount(), nil
}

// IsEngineReady reports whether an index has been built or restored.
func (e *Engine) IsEngineReady() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store != nil
}
