package workspace

import (
	"context"
	"errors"
	"sync"

	"github.com/kompox/mashup/adapters/store/inmem"
	"github.com/kompox/mashup/domain"
	"github.com/kompox/mashup/domain/model"
)

// mockAPI is a mock implementation of domain.WorkspaceAPI for testing.
type mockAPI struct {
	createFunc func(ctx context.Context, req model.CreateWorkspaceRequest) (*model.Workspace, error)
	cloneFunc  func(ctx context.Context, req model.CloneWorkspaceRequest) (*model.Workspace, int, error)
	mergeFunc  func(ctx context.Context, targetID string, req model.MergeMashupRequest) error
	listFunc   func(ctx context.Context) ([]*model.Workspace, error)
	deleteFunc func(ctx context.Context, id string) error

	mu    sync.Mutex
	calls []string
}

func (m *mockAPI) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, op)
}

func (m *mockAPI) CreateWorkspace(ctx context.Context, req model.CreateWorkspaceRequest) (*model.Workspace, error) {
	m.record("create")
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAPI) CloneWorkspace(ctx context.Context, req model.CloneWorkspaceRequest) (*model.Workspace, int, error) {
	m.record("clone")
	if m.cloneFunc != nil {
		return m.cloneFunc(ctx, req)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockAPI) MergeMashup(ctx context.Context, targetID string, req model.MergeMashupRequest) error {
	m.record("merge")
	if m.mergeFunc != nil {
		return m.mergeFunc(ctx, targetID, req)
	}
	return errors.New("not implemented")
}

func (m *mockAPI) ListWorkspaces(ctx context.Context) ([]*model.Workspace, error) {
	m.record("list")
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAPI) DeleteWorkspace(ctx context.Context, id string) error {
	m.record("delete")
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockAPI) Preferences(context.Context, string) (map[string]any, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAPI) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// mockPanel counts Show calls.
type mockPanel struct{ shown int }

func (p *mockPanel) Show(context.Context) error {
	p.shown++
	return nil
}

// mockNavigator records visited URLs.
type mockNavigator struct{ visited []string }

func (n *mockNavigator) Navigate(_ context.Context, url string) error {
	n.visited = append(n.visited, url)
	return nil
}

// recordingMonitor collects sub-task notes.
type recordingMonitor struct{ tasks []string }

func (m *recordingMonitor) LogSubTask(msg string) { m.tasks = append(m.tasks, msg) }

func newTestUseCase(api domain.WorkspaceAPI) (*UseCase, *inmem.WorkspaceCache, *inmem.Session) {
	cache := inmem.NewWorkspaceCache()
	session := inmem.NewSession()
	return &UseCase{
		Repos:     &Repos{Workspace: cache},
		API:       api,
		Activator: session,
		Username:  "alice",
		LogoutURL: "https://platform.example.com/logout",
	}, cache, session
}
