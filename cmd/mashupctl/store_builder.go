package main

import (
	"fmt"
	"sync"

	"github.com/kompox/mashup/adapters/store/inmem"
	"github.com/kompox/mashup/adapters/store/rdb"
	"github.com/kompox/mashup/adapters/ui"
	"github.com/kompox/mashup/config/mashupcfg"
	"github.com/kompox/mashup/domain"
)

// localStore is the workspace cache and session state of one backend.
type localStore struct {
	cache interface {
		domain.WorkspaceCache
		ui.Purger
	}
	session interface {
		domain.WorkspaceActivator
		ui.Resetter
	}
}

// storeCache keeps one localStore per backend key for the process lifetime,
// so that several use case builders in one process see the same state.
var (
	storeCache   = map[string]*localStore{}
	storeCacheMu sync.Mutex
)

// buildLocalStore returns the cache backend selected by cfg.Store.
func buildLocalStore(cfg *mashupcfg.Config) (*localStore, error) {
	key := cfg.Store.Type + ":" + cfg.Store.DSN
	storeCacheMu.Lock()
	defer storeCacheMu.Unlock()
	if s, ok := storeCache[key]; ok {
		return s, nil
	}

	var s *localStore
	switch cfg.Store.Type {
	case mashupcfg.StoreMemory, "":
		s = &localStore{cache: inmem.NewWorkspaceCache(), session: inmem.NewSession()}
	case mashupcfg.StoreRDB:
		db, err := rdb.OpenFromURL(cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open database %s: %w", cfg.Store.DSN, err)
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		s = &localStore{cache: rdb.NewWorkspaceCache(db), session: rdb.NewSession(db)}
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Store.Type)
	}
	storeCache[key] = s
	return s, nil
}
