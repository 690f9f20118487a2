package inmem

import (
	"context"
	"sync"

	"github.com/kompox/mashup/domain"
	"github.com/kompox/mashup/domain/model"
)

// Session tracks the active workspace and a navigation history of
// activated workspace ids.
type Session struct {
	mu      sync.RWMutex
	active  *model.Workspace
	history []string
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Activate(_ context.Context, ws *model.Workspace, opts model.NavigationOptions) error {
	if ws == nil {
		return model.ErrWorkspaceInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = ws.Clone()
	if opts.ReplaceNavigationState && len(s.history) > 0 {
		s.history[len(s.history)-1] = ws.ID
	} else {
		s.history = append(s.history, ws.ID)
	}
	return nil
}

func (s *Session) Active(_ context.Context) (*model.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.Clone(), nil
}

func (s *Session) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
	return nil
}

// History returns the activated workspace ids, oldest first.
func (s *Session) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.history...)
}

// Reset clears the active workspace and history.
func (s *Session) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
	s.history = nil
	return nil
}

// Compile-time assertion.
var _ domain.WorkspaceActivator = (*Session)(nil)
