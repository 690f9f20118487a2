package domain

import (
	"context"

	"github.com/kompox/mashup/domain/model"
)

// WorkspaceCache mirrors the server's workspaces, indexed by id and by
// (creator, name). Implementations keep per-owner insertion order.
type WorkspaceCache interface {
	// Put inserts or replaces a workspace, evicting any stale entry that
	// shares its id or its (creator, name) pair.
	Put(ctx context.Context, ws *model.Workspace) error
	Get(ctx context.Context, id string) (*model.Workspace, error)
	Lookup(ctx context.Context, owner, name string) (*model.Workspace, error)
	// List returns the owner's workspaces in insertion order.
	List(ctx context.Context, owner string) ([]*model.Workspace, error)
	// Delete removes the id entry and the (creator, name) entry of ws.
	Delete(ctx context.Context, ws *model.Workspace) error
}

// WorkspaceAPI is the platform REST API as seen by the workspace use cases.
// Failures are reported as *model.RequestError.
type WorkspaceAPI interface {
	CreateWorkspace(ctx context.Context, req model.CreateWorkspaceRequest) (*model.Workspace, error)
	// CloneWorkspace returns the response status along with the created
	// workspace, which is nil unless the status is 201.
	CloneWorkspace(ctx context.Context, req model.CloneWorkspaceRequest) (*model.Workspace, int, error)
	MergeMashup(ctx context.Context, targetID string, req model.MergeMashupRequest) error
	ListWorkspaces(ctx context.Context) ([]*model.Workspace, error)
	DeleteWorkspace(ctx context.Context, id string) error
	Preferences(ctx context.Context, scope string) (map[string]any, error)
}

// WorkspaceActivator tracks and switches the active workspace.
type WorkspaceActivator interface {
	Activate(ctx context.Context, ws *model.Workspace, opts model.NavigationOptions) error
	// Active returns nil without error when no workspace is active.
	Active(ctx context.Context) (*model.Workspace, error)
	// Clear leaves no workspace active. Navigation history is kept.
	Clear(ctx context.Context) error
}

// PreferencesPanel displays platform preferences.
type PreferencesPanel interface {
	Show(ctx context.Context) error
}

// Navigator moves the session to another location, e.g. the logout view.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
}
