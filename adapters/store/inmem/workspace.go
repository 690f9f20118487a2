package inmem

import (
	"context"
	"slices"
	"sync"

	"github.com/kompox/mashup/domain"
	"github.com/kompox/mashup/domain/model"
)

// WorkspaceCache is a thread-safe in-memory implementation of domain.WorkspaceCache.
type WorkspaceCache struct {
	mu      sync.RWMutex
	byID    map[string]*model.Workspace
	byOwner map[string]map[string]*model.Workspace
	// order keeps names per owner in insertion order.
	order map[string][]string
}

func NewWorkspaceCache() *WorkspaceCache {
	return &WorkspaceCache{
		byID:    make(map[string]*model.Workspace),
		byOwner: make(map[string]map[string]*model.Workspace),
		order:   make(map[string][]string),
	}
}

func (c *WorkspaceCache) Put(_ context.Context, ws *model.Workspace) error {
	if ws == nil || ws.ID == "" || ws.Creator == "" || ws.Name == "" {
		return model.ErrWorkspaceInvalid
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.byID[ws.ID]; ok {
		if old.Creator == ws.Creator && old.Name == ws.Name {
			// Same identity: refresh in place and keep its position.
			cp := ws.Clone()
			c.byID[cp.ID] = cp
			c.byOwner[cp.Creator][cp.Name] = cp
			return nil
		}
		c.unlinkLocked(old)
	}
	if old, ok := c.byOwner[ws.Creator][ws.Name]; ok {
		c.unlinkLocked(old)
	}
	// Copy to avoid external mutation.
	cp := ws.Clone()
	c.byID[cp.ID] = cp
	names, ok := c.byOwner[cp.Creator]
	if !ok {
		names = make(map[string]*model.Workspace)
		c.byOwner[cp.Creator] = names
	}
	names[cp.Name] = cp
	c.order[cp.Creator] = append(c.order[cp.Creator], cp.Name)
	return nil
}

func (c *WorkspaceCache) Get(_ context.Context, id string) (*model.Workspace, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ws, ok := c.byID[id]
	if !ok {
		return nil, model.ErrWorkspaceNotFound
	}
	return ws.Clone(), nil
}

func (c *WorkspaceCache) Lookup(_ context.Context, owner, name string) (*model.Workspace, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ws, ok := c.byOwner[owner][name]
	if !ok {
		return nil, model.ErrWorkspaceNotFound
	}
	return ws.Clone(), nil
}

func (c *WorkspaceCache) List(_ context.Context, owner string) ([]*model.Workspace, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := c.order[owner]
	out := make([]*model.Workspace, 0, len(names))
	for _, name := range names {
		out = append(out, c.byOwner[owner][name].Clone())
	}
	return out, nil
}

func (c *WorkspaceCache) Delete(_ context.Context, ws *model.Workspace) error {
	if ws == nil {
		return model.ErrWorkspaceInvalid
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	found := false
	if old, ok := c.byID[ws.ID]; ok {
		c.unlinkLocked(old)
		found = true
	}
	if old, ok := c.byOwner[ws.Creator][ws.Name]; ok {
		c.unlinkLocked(old)
		found = true
	}
	if !found {
		return model.ErrWorkspaceNotFound
	}
	return nil
}

// Purge drops every cached workspace.
func (c *WorkspaceCache) Purge(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[string]*model.Workspace)
	c.byOwner = make(map[string]map[string]*model.Workspace)
	c.order = make(map[string][]string)
	return nil
}

// unlinkLocked drops both index entries of ws. Caller holds mu.
func (c *WorkspaceCache) unlinkLocked(ws *model.Workspace) {
	delete(c.byID, ws.ID)
	names := c.byOwner[ws.Creator]
	if cur, ok := names[ws.Name]; ok && cur.ID == ws.ID {
		delete(names, ws.Name)
		c.order[ws.Creator] = slices.DeleteFunc(c.order[ws.Creator], func(n string) bool { return n == ws.Name })
	}
	if len(names) == 0 {
		delete(c.byOwner, ws.Creator)
		delete(c.order, ws.Creator)
	}
}

// Compile-time assertion.
var _ domain.WorkspaceCache = (*WorkspaceCache)(nil)
